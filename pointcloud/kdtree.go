package pointcloud

import (
	"container/heap"
	"sort"
)

// kdNode is a single node in a KDTree: a point index, left/right
// child node indices (-1 for none), and the axis this node splits on.
type kdNode struct {
	pointIndex int
	left       int
	right      int
	splitAxis  int
}

// KDTree is a static spatial index over a PointCloud's points, built
// by recursive median split on axis = depth mod 3. The tree borrows
// its source cloud by reference: the cloud must not be mutated for
// the tree's lifetime and must outlive the tree.
type KDTree struct {
	cloud *PointCloud
	nodes []kdNode
	root  int
}

// BuildKDTree builds a KD-tree over cloud. The cloud is borrowed, not
// copied; every query takes the tree's stored reference.
func BuildKDTree(cloud *PointCloud) *KDTree {
	t := &KDTree{cloud: cloud, root: -1}
	if cloud.Size() == 0 {
		return t
	}
	indices := make([]int, cloud.Size())
	for i := range indices {
		indices[i] = i
	}
	t.root = t.buildRecursive(indices, 0)
	return t
}

func axisValue(p Vec3, axis int) float32 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

func (t *KDTree) buildRecursive(indices []int, depth int) int {
	if len(indices) == 0 {
		return -1
	}
	axis := depth % 3
	sort.Slice(indices, func(i, j int) bool {
		return axisValue(t.cloud.At(indices[i]), axis) < axisValue(t.cloud.At(indices[j]), axis)
	})

	mid := len(indices) / 2
	node := kdNode{pointIndex: indices[mid], splitAxis: axis}
	nodeIdx := len(t.nodes)
	t.nodes = append(t.nodes, node)

	left := append([]int(nil), indices[:mid]...)
	right := append([]int(nil), indices[mid+1:]...)

	t.nodes[nodeIdx].left = t.buildRecursive(left, depth+1)
	t.nodes[nodeIdx].right = t.buildRecursive(right, depth+1)

	return nodeIdx
}

// FindNearest returns the index of the point nearest to q, or -1 if
// the tree is empty.
func (t *KDTree) FindNearest(q Vec3) int {
	if t.root < 0 {
		return -1
	}
	bestIdx := -1
	var bestDist float32 = maxFloat32
	t.searchNearest(t.root, q, &bestIdx, &bestDist)
	return bestIdx
}

const maxFloat32 = 3.402823466e+38

func (t *KDTree) searchNearest(nodeIdx int, q Vec3, bestIdx *int, bestDist *float32) {
	if nodeIdx < 0 {
		return
	}
	node := t.nodes[nodeIdx]
	p := t.cloud.At(node.pointIndex)

	d := q.Distance(p)
	if d < *bestDist {
		*bestDist = d
		*bestIdx = node.pointIndex
	}

	diff := axisValue(q, node.splitAxis) - axisValue(p, node.splitAxis)
	var near, far int
	if diff < 0 {
		near, far = node.left, node.right
	} else {
		near, far = node.right, node.left
	}

	t.searchNearest(near, q, bestIdx, bestDist)
	if diff*diff < (*bestDist)*(*bestDist) {
		t.searchNearest(far, q, bestIdx, bestDist)
	}
}

// kNearestItem is a (distance, index) pair held in the k-NN max-heap;
// the largest distance sits at the top so it can be evicted in O(log k).
type kNearestItem struct {
	dist float32
	idx  int
}

type kNearestHeap []kNearestItem

func (h kNearestHeap) Len() int            { return len(h) }
func (h kNearestHeap) Less(i, j int) bool  { return h[i].dist > h[j].dist }
func (h kNearestHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *kNearestHeap) Push(x interface{}) { *h = append(*h, x.(kNearestItem)) }
func (h *kNearestHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// FindKNearest returns up to k point indices nearest to q, sorted by
// ascending distance. Returns an empty slice for an empty tree or
// k<=0. If q coincides with a cloud point, that point is included in
// the result; callers wanting to exclude self should request k+1 and
// discard the zero-distance hit.
func (t *KDTree) FindKNearest(q Vec3, k int) []int {
	if t.root < 0 || k <= 0 {
		return nil
	}
	h := &kNearestHeap{}
	heap.Init(h)
	t.searchKNearest(t.root, q, k, h)

	result := make([]int, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		item := heap.Pop(h).(kNearestItem)
		result[i] = item.idx
	}
	return result
}

func (t *KDTree) searchKNearest(nodeIdx int, q Vec3, k int, h *kNearestHeap) {
	if nodeIdx < 0 {
		return
	}
	node := t.nodes[nodeIdx]
	p := t.cloud.At(node.pointIndex)
	d := q.Distance(p)

	if h.Len() < k {
		heap.Push(h, kNearestItem{dist: d, idx: node.pointIndex})
	} else if d < (*h)[0].dist {
		heap.Pop(h)
		heap.Push(h, kNearestItem{dist: d, idx: node.pointIndex})
	}

	diff := axisValue(q, node.splitAxis) - axisValue(p, node.splitAxis)
	var near, far int
	if diff < 0 {
		near, far = node.left, node.right
	} else {
		near, far = node.right, node.left
	}

	t.searchKNearest(near, q, k, h)

	planeDist := diff
	if planeDist < 0 {
		planeDist = -planeDist
	}
	if h.Len() < k || planeDist < (*h)[0].dist {
		t.searchKNearest(far, q, k, h)
	}
}
