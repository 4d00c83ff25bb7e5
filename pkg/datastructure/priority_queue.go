package datastructure

type PriorityQueueNode[T comparable] struct {
	Rank float64
	Item T
}

// MinHeap binary heap priorityqueue with DecreaseKey support.
type MinHeap[T comparable] struct {
	heap  []PriorityQueueNode[T]
	index map[T]int
}

func NewMinHeap[T comparable]() *MinHeap[T] {
	return &MinHeap[T]{
		heap:  make([]PriorityQueueNode[T], 0),
		index: make(map[T]int),
	}
}

func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / 2
}

func (h *MinHeap[T]) leftChild(index int) int {
	return 2*index + 1
}

func (h *MinHeap[T]) rightChild(index int) int {
	return 2*index + 2
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.index[h.heap[i].Item] = i
	h.index[h.heap[j].Item] = j
}

// heapifyUp restore heap property. check if parent rank is bigger, if so swap, then recurse to parent. O(logN) tree height.
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.heap[index].Rank < h.heap[h.parent(index)].Rank {
		h.swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown restore heap property. check if one of the children rank is smaller, if so swap, then recurse to that child. O(logN) tree height.
func (h *MinHeap[T]) heapifyDown(index int) {
	smallest := index
	left := h.leftChild(index)
	right := h.rightChild(index)

	if left < len(h.heap) && h.heap[left].Rank < h.heap[smallest].Rank {
		smallest = left
	}
	if right < len(h.heap) && h.heap[right].Rank < h.heap[smallest].Rank {
		smallest = right
	}
	if smallest != index {
		h.swap(index, smallest)
		h.heapifyDown(smallest)
	}
}

func (h *MinHeap[T]) isEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

func (h *MinHeap[T]) GetMin() (PriorityQueueNode[T], bool) {
	if h.isEmpty() {
		return PriorityQueueNode[T]{}, false
	}
	return h.heap[0], true
}

func (h *MinHeap[T]) Insert(item PriorityQueueNode[T]) {
	h.heap = append(h.heap, item)
	h.index[item.Item] = len(h.heap) - 1
	h.heapifyUp(len(h.heap) - 1)
}

func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], bool) {
	if h.isEmpty() {
		return PriorityQueueNode[T]{}, false
	}
	min := h.heap[0]
	last := len(h.heap) - 1
	h.swap(0, last)
	h.heap = h.heap[:last]
	delete(h.index, min.Item)
	if !h.isEmpty() {
		h.heapifyDown(0)
	}
	return min, true
}

// DecreaseKey lower the rank of an item already in the heap. Inserts when the
// item is not present.
func (h *MinHeap[T]) DecreaseKey(item PriorityQueueNode[T]) {
	pos, ok := h.index[item.Item]
	if !ok {
		h.Insert(item)
		return
	}
	if item.Rank >= h.heap[pos].Rank {
		return
	}
	h.heap[pos].Rank = item.Rank
	h.heapifyUp(pos)
}
