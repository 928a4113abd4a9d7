package resolver

import (
	"bytes"

	"umsgraph/src/domain"
	"umsgraph/src/domain/entities"
)

// StorageMarkerHook reescreve o marcador de storage na leitura: o ancestral
// grava o literal "true" e quem lê recebe o unique_id do nó resolvido, que é
// o endereço que o storage externo espera. Registrar no wiring para a chave
// domain.KeyStorage.
func StorageMarkerHook(resolving *entities.Node, attr *entities.Attribute) {
	if attr.Key != domain.KeyStorage {
		return
	}
	if !bytes.Equal(attr.Value, []byte("true")) {
		return
	}
	attr.Value = []byte(resolving.UniqueID)
}
