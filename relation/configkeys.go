package relation

const (
	delimiter = "."

	ConfigPrefix = "config"

	ConfigRelationPrefix          = ConfigPrefix + delimiter + "relation"
	ConfigRelationStrictInsert    = ConfigRelationPrefix + delimiter + "strict_insert"
	ConfigRelationInitialCapacity = ConfigRelationPrefix + delimiter + "initial_capacity"

	ConfigInverseCachePrefix     = ConfigPrefix + delimiter + "inversecache"
	ConfigInverseCacheMaxEntries = ConfigInverseCachePrefix + delimiter + "max_entries"
)
