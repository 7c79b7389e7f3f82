// Package storage provides the key-value slot backends the collection stores
// persist into. Each logical collection occupies a single string-keyed slot
// holding its serialized form.
package storage

// Backend reads and writes one serialized value per key. Get reports whether
// the key exists; a missing key is not an error. Implementations must make
// Set atomic per key: a reader sees either the old value or the new one,
// never a torn write.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}
