package runtime

import (
	"github.com/aretw0/bisim/pkg/domain"
)

// Aggregate unions the signatures of the members of every live block.
func Aggregate(sigs map[domain.State]domain.Signature, p domain.Partitioning) map[domain.PartitionID]domain.Signature {
	blocks := make(map[domain.PartitionID]domain.Signature)
	for s, sig := range sigs {
		id := p[s]
		agg, ok := blocks[id]
		if !ok {
			agg = make(domain.Signature, len(sig))
			blocks[id] = agg
		}
		agg.Union(sig)
	}
	return blocks
}
