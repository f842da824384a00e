package domain

import "encoding/json"

// Известные ключи записи в датасете. Все остальные поля мы не интерпретируем,
// но обязаны сохранить без изменений при перезаписи файла.
const (
	keyName     = "name"
	keyMLQuery  = "mlQuery"
	keyPriceARS = "priceArs"
)

// GpuRecord - одна запись датасета: модель видеокарты и её последняя известная цена.
// Датасет курируется вручную, поэтому кроме известных полей запись может содержать
// произвольные описательные поля (vram, brand, ссылки и т.д.).
type GpuRecord struct {
	Name     string // уникальный отображаемый ключ
	MLQuery  string // необязательная строка поиска, переопределяет Name
	PriceARS *int64 // текущая лучшая цена в ARS; nil до первого обновления

	// Extra хранит все неизвестные поля записи как есть.
	Extra map[string]json.RawMessage
}

// Query возвращает строку поиска для MercadoLibre: mlQuery, если задан, иначе name.
// Пустая строка означает, что запись нужно пропустить.
func (g *GpuRecord) Query() string {
	if g.MLQuery != "" {
		return g.MLQuery
	}
	return g.Name
}

// UnmarshalJSON разбирает запись, вынимая известные поля и складывая
// остальные в Extra без интерпретации.
func (g *GpuRecord) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw[keyName]; ok {
		if err := json.Unmarshal(v, &g.Name); err != nil {
			return err
		}
		delete(raw, keyName)
	}
	if v, ok := raw[keyMLQuery]; ok {
		if err := json.Unmarshal(v, &g.MLQuery); err != nil {
			return err
		}
		delete(raw, keyMLQuery)
	}
	if v, ok := raw[keyPriceARS]; ok {
		if err := json.Unmarshal(v, &g.PriceARS); err != nil {
			return err
		}
		delete(raw, keyPriceARS)
	}

	g.Extra = raw

	return nil
}

// MarshalJSON собирает запись обратно: известные поля плюс Extra.
// encoding/json сортирует ключи карты, поэтому вывод детерминирован.
func (g *GpuRecord) MarshalJSON() ([]byte, error) {
	raw := make(map[string]json.RawMessage, len(g.Extra)+3)
	for k, v := range g.Extra {
		raw[k] = v
	}

	nameJSON, err := json.Marshal(g.Name)
	if err != nil {
		return nil, err
	}
	raw[keyName] = nameJSON

	if g.MLQuery != "" {
		queryJSON, err := json.Marshal(g.MLQuery)
		if err != nil {
			return nil, err
		}
		raw[keyMLQuery] = queryJSON
	}

	if g.PriceARS != nil {
		priceJSON, err := json.Marshal(g.PriceARS)
		if err != nil {
			return nil, err
		}
		raw[keyPriceARS] = priceJSON
	}

	return json.Marshal(raw)
}

// PriceChange описывает изменение цены одной записи за один прогон обновления.
// Существует только в ответе API, в файл не сохраняется.
type PriceChange struct {
	Name        string `json:"name"`
	OldPriceARS *int64 `json:"oldPriceArs"` // nil, если цены ещё не было
	NewPriceARS int64  `json:"newPriceArs"`
}

// UpdateParams - параметры одного прогона обновления цен.
type UpdateParams struct {
	MaxResults   int     // сколько результатов поиска просматривать на запись
	DryRun       bool    // true - получить цены, но не перезаписывать файл
	SleepSeconds float64 // пауза между запросами к MercadoLibre
}

// UpdateResult - итог прогона обновления.
type UpdateResult struct {
	DryRun   bool
	Updated  bool // true, если файл был перезаписан
	GpuCount int
	DataFile string
	Changes  []PriceChange
}
