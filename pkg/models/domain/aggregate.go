package domain

import "sort"

// Bucket is one row of an Aggregate.
type Bucket struct {
	Key        string
	TotalValue float64
	ItemCount  int
}

// AverageValue returns the mean value per item, 0 for an empty bucket.
func (b Bucket) AverageValue() float64 {
	if b.ItemCount == 0 {
		return 0
	}
	return b.TotalValue / float64(b.ItemCount)
}

// Aggregate maps bucket keys to totals while remembering insertion order.
type Aggregate struct {
	buckets []Bucket
	index   map[string]int
}

// NewAggregate creates an aggregate pre-seeded with empty buckets in the given order.
func NewAggregate(keys ...string) *Aggregate {
	a := &Aggregate{index: make(map[string]int, len(keys))}
	for _, k := range keys {
		a.bucket(k)
	}
	return a
}

func (a *Aggregate) bucket(key string) *Bucket {
	if i, ok := a.index[key]; ok {
		return &a.buckets[i]
	}
	a.index[key] = len(a.buckets)
	a.buckets = append(a.buckets, Bucket{Key: key})
	return &a.buckets[len(a.buckets)-1]
}

// Add accounts one item of the given value under key.
func (a *Aggregate) Add(key string, value float64) {
	b := a.bucket(key)
	b.TotalValue += value
	b.ItemCount++
}

// Get returns the bucket stored under key.
func (a *Aggregate) Get(key string) (Bucket, bool) {
	i, ok := a.index[key]
	if !ok {
		return Bucket{}, false
	}
	return a.buckets[i], true
}

// Len returns the number of buckets.
func (a *Aggregate) Len() int {
	return len(a.buckets)
}

// Buckets returns a copy of the buckets in insertion order.
func (a *Aggregate) Buckets() []Bucket {
	out := make([]Bucket, len(a.buckets))
	copy(out, a.buckets)
	return out
}

// Values returns the bucket totals in insertion order.
func (a *Aggregate) Values() []float64 {
	out := make([]float64, len(a.buckets))
	for i, b := range a.buckets {
		out[i] = b.TotalValue
	}
	return out
}

// TotalValue sums the values of all buckets.
func (a *Aggregate) TotalValue() float64 {
	var total float64
	for _, b := range a.buckets {
		total += b.TotalValue
	}
	return total
}

// ItemCount sums the item counts of all buckets.
func (a *Aggregate) ItemCount() int {
	var count int
	for _, b := range a.buckets {
		count += b.ItemCount
	}
	return count
}

// SortedByValue returns the buckets ordered by descending value.
// Ties keep insertion order.
func (a *Aggregate) SortedByValue() []Bucket {
	out := a.Buckets()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalValue > out[j].TotalValue
	})
	return out
}
