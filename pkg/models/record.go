package models

// Record is one generated entity row: a string-keyed mapping of scalar or
// date values, ready for persistence.
type Record map[string]interface{}
