package atomspec

import "slices"

// KeyedMap maps keys (colours or attribute values) to their residue Model,
// iterating in the order each key was first used. That order determines the
// order of generated commands, so identical input always renders identically.
type KeyedMap[K comparable] struct {
	keys   []K
	models map[K]*Model
}

// NewKeyedMap creates an empty KeyedMap.
func NewKeyedMap[K comparable]() *KeyedMap[K] {
	return &KeyedMap[K]{models: make(map[K]*Model)}
}

// Model returns the Model for key, creating it (and fixing the key's
// position) on first use.
func (k *KeyedMap[K]) Model(key K) *Model {
	m, ok := k.models[key]
	if !ok {
		m = NewModel()
		k.models[key] = m
		k.keys = append(k.keys, key)
	}
	return m
}

// AddRange adds a residue range under key.
func (k *KeyedMap[K]) AddRange(key K, model, start, end int, chain string) {
	k.Model(key).AddRange(model, start, end, chain)
}

// Lookup returns the Model for key without creating one.
func (k *KeyedMap[K]) Lookup(key K) (*Model, bool) {
	m, ok := k.models[key]
	return m, ok
}

// Keys returns the keys in first-use order.
func (k *KeyedMap[K]) Keys() []K {
	return slices.Clone(k.keys)
}

// Len returns the number of keys.
func (k *KeyedMap[K]) Len() int { return len(k.keys) }

// FeatureMap groups per-value residue models under a feature (attribute)
// name. Feature names and values both iterate in first-use order.
type FeatureMap struct {
	names  []string
	values map[string]*KeyedMap[string]
}

// NewFeatureMap creates an empty FeatureMap.
func NewFeatureMap() *FeatureMap {
	return &FeatureMap{values: make(map[string]*KeyedMap[string])}
}

// AddRange adds a residue range under feature and value.
func (f *FeatureMap) AddRange(feature, value string, model, start, end int, chain string) {
	v, ok := f.values[feature]
	if !ok {
		v = NewKeyedMap[string]()
		f.values[feature] = v
		f.names = append(f.names, feature)
	}
	v.AddRange(value, model, start, end, chain)
}

// Features returns the feature names in first-use order.
func (f *FeatureMap) Features() []string {
	return slices.Clone(f.names)
}

// Values returns the value map for feature, or nil if unknown.
func (f *FeatureMap) Values(feature string) *KeyedMap[string] {
	return f.values[feature]
}

// Len returns the number of features.
func (f *FeatureMap) Len() int { return len(f.names) }
