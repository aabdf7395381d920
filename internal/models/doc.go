// Package models defines the persisted entity shapes of every domain and the
// storage keys they live under.
//
// JSON field names follow the data already found in existing stores, so an
// export from an older installation imports cleanly. Every top-level entity
// embeds collection.Meta; nested sub-entities carry their own ids where the
// services address them individually.
package models
