package memory_test

import (
	"testing"

	"github.com/aretw0/bisim/pkg/adapters/memory"
	"github.com/aretw0/bisim/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunResultStoreContract(t, store)
}
