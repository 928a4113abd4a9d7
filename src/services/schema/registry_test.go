package schema_test

import (
	"context"
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"umsgraph/src/domain"
	"umsgraph/src/services/schema"
	"umsgraph/src/test_artefacts/memstore"
	"umsgraph/src/test_artefacts/stubs"
)

var _ = Describe("Registry", func() {
	var (
		schemaStore *memstore.SchemaStore
		registry    *schema.Registry
		ctx         context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		schemaStore = memstore.NewSchemaStore()
		registry = schema.NewRegistry(schemaStore)
	})

	Context("Get", func() {
		It("should fall through to the store on a snapshot miss", func() {
			// ARRANGE
			schemaStore.Put(stubs.NewSchemaEntryStub().WithKey("nickname").Get())

			// ACT
			entry, err := registry.Get(ctx, "nickname")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(entry).NotTo(BeNil())
			Expect(entry.Key).To(Equal("nickname"))
		})

		It("should return nil for a key absent everywhere", func() {
			// ACT
			entry, err := registry.Get(ctx, "ghost")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(entry).To(BeNil())
		})

		It("should serve from the snapshot after the first hit", func() {
			// ARRANGE
			schemaStore.Put(stubs.NewSchemaEntryStub().WithKey("nickname").Get())
			_, err := registry.Get(ctx, "nickname")
			Expect(err).NotTo(HaveOccurred())

			// A remoção no store não invalida o snapshot já publicado.
			schemaStore.Remove("nickname")

			// ACT
			entry, err := registry.Get(ctx, "nickname")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(entry).NotTo(BeNil())
		})
	})

	Context("Refresh", func() {
		It("should swap the snapshot to the store's current content", func() {
			// ARRANGE
			schemaStore.Put(stubs.NewSchemaEntryStub().WithKey("email").Get())
			schemaStore.Put(stubs.NewSchemaEntryStub().WithKey("phone").Get())

			// ACT
			err := registry.Refresh(ctx)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(registry.AllKeys()).To(Equal([]string{"email", "phone"}))
		})

		It("should keep the previous snapshot when the reload fails", func() {
			// ARRANGE
			schemaStore.Put(stubs.NewSchemaEntryStub().WithKey("email").Get())
			Expect(registry.Refresh(ctx)).To(Succeed())

			schemaStore.FailNext = errors.New("connection reset")

			// ACT
			err := registry.Refresh(ctx)

			// ASSERT
			Expect(err).To(HaveOccurred())
			Expect(registry.AllKeys()).To(Equal([]string{"email"}))
		})

		It("should never expose a partial snapshot to concurrent readers", func() {
			// ARRANGE
			for _, key := range []string{"a", "b", "c", "d"} {
				schemaStore.Put(stubs.NewSchemaEntryStub().WithKey(key).Get())
			}

			// ACT
			var wg sync.WaitGroup
			sizes := make(chan int, 200)
			for i := 0; i < 100; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					sizes <- len(registry.AllKeys())
				}()
			}
			for i := 0; i < 10; i++ {
				Expect(registry.Refresh(ctx)).To(Succeed())
			}
			wg.Wait()
			close(sizes)

			// ASSERT: ou o snapshot inicial vazio, ou o completo.
			for size := range sizes {
				Expect(size).To(BeElementOf(0, 4))
			}
		})
	})

	Context("Validate", func() {
		It("should reject keys missing from the schema", func() {
			// ACT
			err := registry.Validate(ctx, "ghost", 3)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrUnknownKey))
		})

		It("should accept a value exactly at max size", func() {
			// ARRANGE
			schemaStore.Put(stubs.NewSchemaEntryStub().WithKey("avatar").WithMaxSize(8).Get())

			// ACT
			err := registry.Validate(ctx, "avatar", 8)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject a value one byte over max size", func() {
			// ARRANGE
			schemaStore.Put(stubs.NewSchemaEntryStub().WithKey("avatar").WithMaxSize(8).Get())

			// ACT
			err := registry.Validate(ctx, "avatar", 9)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrSizeExceeded))
		})

		It("should accept any size when the entry has no max", func() {
			// ARRANGE
			schemaStore.Put(stubs.NewSchemaEntryStub().WithKey("bio").Get())

			// ACT
			err := registry.Validate(ctx, "bio", 1<<20)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
