package world

// Log messages for the in-memory world
const (
	LogMsgPrefabSpawned   = "Prefab spawned"
	LogMsgEntitiesRemoved = "Entities removed"
)
