package domain

import "errors"

// ErrDatasetNotFound возвращается хранилищем, когда файл датасета отсутствует.
// Для CLI это фатальная ошибка, для HTTP - 500.
var ErrDatasetNotFound = errors.New("dataset file not found")
