package comparer

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func IgnoreFieldsFor[T any](fields ...string) cmp.Option {
	var t T
	return cmpopts.IgnoreFields(t, fields...)
}

func TimeWithinTolerance(toleranceMs int) cmp.Option {
	tolerance := time.Duration(toleranceMs) * time.Millisecond

	return cmp.Comparer(func(x, y time.Time) bool {
		diff := x.Sub(y)
		if diff < 0 {
			diff = -diff
		}
		return diff <= tolerance
	})
}

// JSONRawMessage compara json.RawMessage ignorando a ordem das chaves.
func JSONRawMessage() cmp.Option {
	return cmp.Comparer(func(x, y json.RawMessage) bool {
		if len(x) == 0 && len(y) == 0 {
			return true
		}
		if len(x) == 0 || len(y) == 0 {
			return false
		}

		var xObj, yObj interface{}
		if err := json.Unmarshal(x, &xObj); err != nil {
			return false
		}
		if err := json.Unmarshal(y, &yObj); err != nil {
			return false
		}
		return reflect.DeepEqual(xObj, yObj)
	})
}
