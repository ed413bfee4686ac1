package buffer

// Buffer defines a simple float buffer that acts like a constant size queue
type Buffer struct {
	size   int
	values []float64
}

// NewBuffer creates a new buffer.
func NewBuffer(size int) *Buffer {
	return &Buffer{
		size:   size,
		values: make([]float64, 0),
	}
}

// Push adds an element to the buffer.
// It returns the evicted element, if the buffer was already full.
func (b *Buffer) Push(x float64) (float64, bool) {
	b.values = append(b.values, x)
	if len(b.values) > b.size {
		value := b.values[0]
		b.values = b.values[1:]
		return value, true
	}
	return 0, false
}

// Get returns the buffer elements in the order they were added.
func (b *Buffer) Get() []float64 {
	vv := make([]float64, len(b.values))
	copy(vv, b.values)
	return vv
}

// Len returns the current length of the buffer.
func (b *Buffer) Len() int {
	return len(b.values)
}

// Avg returns the average of the buffered elements.
func (b *Buffer) Avg() float64 {
	if len(b.values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range b.values {
		sum += v
	}
	return sum / float64(len(b.values))
}

// MultiBuffer defines a simple float slice buffer that acts like a constant size queue
type MultiBuffer struct {
	size   int
	values [][]float64
}

// NewMultiBuffer creates a new buffer.
func NewMultiBuffer(size int) *MultiBuffer {
	return &MultiBuffer{
		size:   size,
		values: make([][]float64, 0),
	}
}

// Push adds an element to the buffer.
// It returns the evicted element, if the buffer was already full.
func (b *MultiBuffer) Push(x ...float64) ([]float64, bool) {
	v := make([]float64, len(x))
	copy(v, x)
	b.values = append(b.values, v)
	if len(b.values) > b.size {
		value := b.values[0]
		b.values = b.values[1:]
		return value, true
	}
	return nil, false
}

// Get returns the buffer elements in the order they were added.
func (b *MultiBuffer) Get() [][]float64 {
	size := len(b.values)
	vv := make([][]float64, size)
	for i := 0; i < size; i++ {
		v := make([]float64, len(b.values[i]))
		copy(v, b.values[i])
		vv[i] = v
	}
	return vv
}

// Len returns the current length of the buffer.
func (b *MultiBuffer) Len() int {
	return len(b.values)
}

// Cap returns the maximum length of the buffer.
func (b *MultiBuffer) Cap() int {
	return b.size
}

// Last returns the last element in the buffer.
func (b *MultiBuffer) Last() []float64 {
	size := len(b.values)
	if size > 0 {
		return b.values[size-1]
	}
	return []float64{}
}

// Clear drops all elements of the buffer.
func (b *MultiBuffer) Clear() {
	b.values = make([][]float64, 0)
}
