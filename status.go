package softcache

// Status is a point-in-time report of the facade state. Host, Port,
// and DB are nil (JSON null) when caching is disabled.
type Status struct {
	Enabled   bool    `json:"enabled"`
	Connected bool    `json:"connected"`
	Backend   string  `json:"backend"`
	Host      *string `json:"host"`
	Port      *int    `json:"port"`
	DB        *int    `json:"db"`
}
