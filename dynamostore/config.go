package dynamostore

// Config holds configuration for the DynamoDB backend.
type Config struct {
	// IndividualsTable is the table holding individuals, keyed by "id".
	// Default: "ontomap_individuals"
	IndividualsTable string

	// IndexTable is the table holding class-membership and property
	// index records, keyed by "pk" (hash key) and "sk" (individual id).
	// Default: "ontomap_index"
	IndexTable string

	// NumShards is the number of shards for class-membership records.
	// Higher values spread writes for classes with many individuals but
	// require more queries when scanning a class.
	// Default: 1 (no sharding)
	// Max: 256
	NumShards int
}

// DefaultConfig returns sensible defaults for small ontologies.
func DefaultConfig() Config {
	return Config{
		IndividualsTable: "ontomap_individuals",
		IndexTable:       "ontomap_index",
		NumShards:        1,
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.IndividualsTable == "" {
		c.IndividualsTable = "ontomap_individuals"
	}
	if c.IndexTable == "" {
		c.IndexTable = "ontomap_index"
	}
	if c.NumShards < 1 {
		c.NumShards = 1
	}
	if c.NumShards > 256 {
		c.NumShards = 256
	}
}
