package repository

import jsoniter "github.com/json-iterator/go"

// Colunas jsonb são serializadas com a mesma configuração usada pela API
var json = jsoniter.ConfigCompatibleWithStandardLibrary
