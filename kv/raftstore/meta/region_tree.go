package meta

import (
	"bytes"

	"github.com/google/btree"
	"github.com/tikv-apply/raftapply/proto/pkg/metapb"
)

// regionItem orders regions by EndKey so RegionTree can answer "what region
// owns this key" and "what region is adjacent to this one" queries, the
// same way the full raftstore's StoreMeta region tree does.
type regionItem struct {
	region *metapb.Region
}

func (it *regionItem) Less(other btree.Item) bool {
	left := it.region.EndKey
	right := other.(*regionItem).region.EndKey
	if len(left) == 0 {
		return false // infinite end key sorts last
	}
	if len(right) == 0 {
		return true
	}
	return bytes.Compare(left, right) < 0
}

// RegionTree indexes a store's regions by key range. The router uses it to
// reject registering a region that overlaps one already registered, and
// exposes AdjacentAfter through ApplyRouter.AdjacentRegion; the merge
// rendezvous itself compares region keys directly and does not consult it.
type RegionTree struct {
	tree *btree.BTree
}

func NewRegionTree() *RegionTree {
	return &RegionTree{tree: btree.New(32)}
}

// Insert adds or replaces region in the tree.
func (t *RegionTree) Insert(region *metapb.Region) {
	t.tree.ReplaceOrInsert(&regionItem{region: region})
}

// Remove deletes region from the tree.
func (t *RegionTree) Remove(region *metapb.Region) {
	t.tree.Delete(&regionItem{region: region})
}

// GetByKey returns the region owning key, if any.
func (t *RegionTree) GetByKey(key []byte) *metapb.Region {
	var found *metapb.Region
	visit := func(i btree.Item) bool {
		r := i.(*regionItem).region
		if len(r.EndKey) != 0 && bytes.Compare(r.EndKey, key) <= 0 {
			return true
		}
		if bytes.Compare(key, r.StartKey) >= 0 {
			found = r
		}
		return false
	}
	if len(key) == 0 {
		t.tree.Ascend(visit)
	} else {
		t.tree.AscendGreaterOrEqual(&regionItem{region: &metapb.Region{EndKey: key}}, visit)
	}
	return found
}

// AdjacentAfter returns the region whose StartKey equals region's EndKey,
// i.e. the region immediately to the right of region.
func (t *RegionTree) AdjacentAfter(region *metapb.Region) *metapb.Region {
	if len(region.EndKey) == 0 {
		return nil
	}
	var found *metapb.Region
	t.tree.AscendGreaterOrEqual(&regionItem{region: &metapb.Region{EndKey: region.EndKey}}, func(i btree.Item) bool {
		r := i.(*regionItem).region
		if r.Id == region.Id {
			return true
		}
		if bytes.Equal(r.StartKey, region.EndKey) {
			found = r
		}
		return false
	})
	return found
}

// Overlaps reports whether any region already in the tree overlaps the
// [StartKey, EndKey) range of region, used by the router to refuse a
// conflicting Registration.
func (t *RegionTree) Overlaps(region *metapb.Region) bool {
	overlap := false
	visit := func(i btree.Item) bool {
		r := i.(*regionItem).region
		if r.Id == region.Id {
			return true
		}
		if len(r.EndKey) != 0 && bytes.Compare(r.EndKey, region.StartKey) <= 0 {
			return true
		}
		if len(region.EndKey) != 0 && bytes.Compare(r.StartKey, region.EndKey) >= 0 {
			return false
		}
		overlap = true
		return false
	}
	if len(region.StartKey) == 0 {
		t.tree.Ascend(visit)
	} else {
		t.tree.AscendGreaterOrEqual(&regionItem{region: &metapb.Region{EndKey: region.StartKey}}, visit)
	}
	return overlap
}
