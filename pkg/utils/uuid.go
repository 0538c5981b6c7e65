package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera o identificador de automações
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 12)
}

// GenerateActionID gera identificadores de ações, mais longos por serem muito mais numerosos
func GenerateActionID() (string, error) {
	return gonanoid.Generate(characters, 20)
}
