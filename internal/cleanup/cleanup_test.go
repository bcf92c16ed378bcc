package cleanup_test

import (
	"context"
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/eventsqa/harness/internal/cleanup"
)

// memoryCollections is an in-memory document store keyed by collection name.
type memoryCollections struct {
	mu      sync.Mutex
	docs    map[string]int64
	failing map[string]error
	deleted []string
}

func newMemoryCollections() *memoryCollections {
	return &memoryCollections{docs: map[string]int64{}, failing: map[string]error{}}
}

func (m *memoryCollections) DeleteAll(_ context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failing[name]; err != nil {
		return 0, err
	}
	n := m.docs[name]
	m.docs[name] = 0
	m.deleted = append(m.deleted, name)
	return n, nil
}

func (m *memoryCollections) Count(_ context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[name], nil
}

var _ = Describe("Cleaner", func() {
	var (
		ctx context.Context
		db  *memoryCollections
		c   *cleanup.Cleaner
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = newMemoryCollections()
		for _, name := range cleanup.DefaultCollections {
			db.docs[name] = 3
		}
		c = cleanup.NewCleanerWithCollections(db)
	})

	// Given every tracked collection holds documents
	// When CleanAll runs
	// Then every collection is empty
	It("should empty every tracked collection", func() {
		Expect(c.CleanAll(ctx)).To(Succeed())

		counts, err := c.Counts(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(counts).To(HaveLen(8))
		for name, n := range counts {
			Expect(n).To(BeZero(), name)
		}
		Expect(db.deleted).To(Equal(cleanup.DefaultCollections))
	})

	It("should skip collections that fail and clean the rest", func() {
		db.failing["profiles"] = errors.New("collection locked")

		Expect(c.CleanAll(ctx)).To(Succeed())

		Expect(db.docs["profiles"]).To(Equal(int64(3)))
		Expect(db.docs["crawls"]).To(BeZero())
		Expect(db.deleted).To(HaveLen(7))
	})

	It("should clean a single collection and report the count", func() {
		n, err := c.CleanCollection(ctx, "events")

		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(3)))
		Expect(db.docs["users"]).To(Equal(int64(3)))
	})

	It("should return the error of a single collection", func() {
		db.failing["events"] = errors.New("boom")

		_, err := c.CleanCollection(ctx, "events")

		Expect(err).To(MatchError(ContainSubstring("failed to clean events")))
	})

	It("should only track the collections it was given", func() {
		c = cleanup.NewCleanerWithCollections(db, "urls")
		Expect(c.CleanAll(ctx)).To(Succeed())
		Expect(db.deleted).To(Equal([]string{"urls"}))
		Expect(c.Collections()).To(Equal([]string{"urls"}))
	})

	It("should disconnect without a client", func() {
		Expect(c.Disconnect(ctx)).To(Succeed())
	})
})

var _ = Describe("Fixture", func() {
	It("should clean around the suite and every test", func() {
		ctx := context.Background()
		db := newMemoryCollections()
		fx := cleanup.NewFixture(cleanup.NewCleanerWithCollections(db, "accounts"))

		Expect(fx.SetupSuite(ctx)).To(Succeed())
		db.docs["accounts"] = 1
		Expect(fx.SetupSpec(ctx)).To(Succeed())
		Expect(db.docs["accounts"]).To(BeZero())
		db.docs["accounts"] = 2
		Expect(fx.TeardownSpec(ctx)).To(Succeed())
		Expect(fx.TeardownSuite(ctx)).To(Succeed())

		Expect(db.deleted).To(HaveLen(4))
		Expect(db.docs["accounts"]).To(BeZero())
	})
})
