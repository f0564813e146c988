package utils

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, idLength)
}

// CycleID identifica um ciclo de carga nos logs; sem entropia disponível
// cai para o número da geração.
func CycleID(generation uint64) string {
	id, err := GenerateID()
	if err != nil {
		return fmt.Sprintf("g%d", generation)
	}
	return fmt.Sprintf("%d-%s", generation, id)
}
