// Package memstore implementa os ports de src/domain em memória, com a mesma
// semântica de ordenação das queries reais. Usado pelas suítes dos services
// para exercitar resolução e validação sem banco.
package memstore

import (
	"time"
)

func now() time.Time {
	return time.Now().UTC()
}
