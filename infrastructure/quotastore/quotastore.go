// Package quotastore guarda os contadores diários de cota por plataforma.
//
// As chaves já carregam o dia de referência, então o "reset" diário é só a troca de
// chave; o TTL existe apenas para que contadores antigos desapareçam sozinhos.
package quotastore

import (
	"context"
	"time"
)

type Store interface {
	// Used devolve o consumo atual da chave, zero quando ela ainda não existe
	Used(ctx context.Context, key string) (int, error)
	// Consume soma delta à chave somente se o total não ultrapassar limit.
	// Quando ok é false nada foi alterado e used é o consumo atual.
	Consume(ctx context.Context, key string, delta, limit int, ttl time.Duration) (used int, ok bool, err error)
	// Release devolve delta unidades à chave sem deixá-la negativa
	Release(ctx context.Context, key string, delta int) (int, error)
}
