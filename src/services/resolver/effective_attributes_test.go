package resolver_test

import (
	"context"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"umsgraph/src/domain/entities"
	"umsgraph/src/services/resolver"
	"umsgraph/src/services/schema"
	"umsgraph/src/test_artefacts/comparer"
	"umsgraph/src/test_artefacts/memstore"
	"umsgraph/src/test_artefacts/stubs"
)

var _ = Describe("EffectiveAttributes", func() {
	var (
		nodeStore       *memstore.NodeStore
		attributeStore  *memstore.AttributeStore
		membershipStore *memstore.MembershipStore
		schemaStore     *memstore.SchemaStore
		registry        *schema.Registry
		resolverService *resolver.ResolverService
		ctx             context.Context
	)

	newNode := func(kind entities.NodeKind) entities.Node {
		node := stubs.NewNodeStub().WithKind(kind).Get()
		Expect(nodeStore.Insert(ctx, &node)).To(Succeed())
		return node
	}

	setAttr := func(nodeID int64, key, value string) {
		attr := stubs.NewAttributeStub().WithNodeID(nodeID).WithKey(key).WithValue(value).Get()
		_, err := attributeStore.Upsert(ctx, &attr)
		Expect(err).NotTo(HaveOccurred())
	}

	link := func(nodeID, parentID int64) {
		edge := entities.MembershipEdge{NodeID: nodeID, ParentID: parentID}
		Expect(membershipStore.Insert(ctx, &edge)).To(Succeed())
	}

	pairs := func(attrs []entities.Attribute) [][2]string {
		out := make([][2]string, 0, len(attrs))
		for i := range attrs {
			out = append(out, [2]string{attrs[i].Key, string(attrs[i].Value)})
		}
		return out
	}

	BeforeEach(func() {
		ctx = context.Background()

		nodeStore = memstore.NewNodeStore()
		attributeStore = memstore.NewAttributeStore()
		membershipStore = memstore.NewMembershipStore()
		schemaStore = memstore.NewSchemaStore()
		registry = schema.NewRegistry(schemaStore)
		resolverService = resolver.NewResolverService(nodeStore, attributeStore, membershipStore, registry)
	})

	Context("node does not exist", func() {
		It("should return an empty view without error", func() {
			// ACT
			result, err := resolverService.EffectiveAttributes(ctx, 999)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeEmpty())
		})
	})

	Context("merged view ordering", func() {
		It("should list own attributes before inherited ones", func() {
			// ARRANGE
			parent := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			link(child.ID, parent.ID)
			setAttr(child.ID, "nickname", "kim")
			setAttr(parent.ID, "region", "south")

			// ACT
			result, err := resolverService.EffectiveAttributes(ctx, child.ID)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(pairs(result)).To(Equal([][2]string{
				{"nickname", "kim"},
				{"region", "south"},
			}))
		})

		It("should carry the inherited record whole, with only the owner kind rewritten", func() {
			// ARRANGE
			parent := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			link(child.ID, parent.ID)
			setAttr(parent.ID, "region", "south")

			stored, err := attributeStore.GetOwn(ctx, parent.ID, "region")
			Expect(err).NotTo(HaveOccurred())

			expected := *stored
			expected.OwnerKind = entities.KindGroup

			// ACT
			result, err := resolverService.EffectiveAttributes(ctx, child.ID)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(1))

			diff := cmp.Diff(expected, result[0],
				comparer.IgnoreFieldsFor[entities.Attribute]("DataType"),
				comparer.TimeWithinTolerance(1000),
			)
			Expect(diff).To(BeEmpty(), diff)
		})
	})

	Context("override-parent suppression", func() {
		It("should drop inherited occurrences when the key overrides and the node has its own value", func() {
			// ARRANGE
			entry := stubs.NewSchemaEntryStub().WithKey("theme").WithOverrideParent(true).Get()
			schemaStore.Put(entry)

			parent := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			link(child.ID, parent.ID)
			setAttr(child.ID, "theme", "light")
			setAttr(parent.ID, "theme", "dark")

			// ACT
			result, err := resolverService.EffectiveAttributes(ctx, child.ID)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(pairs(result)).To(Equal([][2]string{{"theme", "light"}}))
		})

		It("should keep inherited occurrences when the node has no own value", func() {
			// ARRANGE
			entry := stubs.NewSchemaEntryStub().WithKey("theme").WithOverrideParent(true).Get()
			schemaStore.Put(entry)

			parent := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			link(child.ID, parent.ID)
			setAttr(parent.ID, "theme", "dark")

			// ACT
			result, err := resolverService.EffectiveAttributes(ctx, child.ID)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(pairs(result)).To(Equal([][2]string{{"theme", "dark"}}))
		})

		It("should keep both values when the key does not override", func() {
			// ARRANGE
			parent := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			link(child.ID, parent.ID)
			setAttr(child.ID, "tag", "own")
			setAttr(parent.ID, "tag", "inherited")

			// ACT
			result, err := resolverService.EffectiveAttributes(ctx, child.ID)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(pairs(result)).To(Equal([][2]string{
				{"tag", "own"},
				{"tag", "inherited"},
			}))
		})
	})

	Context("duplicate key and value pairs", func() {
		It("should keep a single occurrence when two ancestors hold identical bytes", func() {
			// ARRANGE
			left := newNode(entities.KindGroup)
			right := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			link(child.ID, left.ID)
			link(child.ID, right.ID)
			setAttr(left.ID, "policy", "strict")
			setAttr(right.ID, "policy", "strict")

			// ACT
			result, err := resolverService.EffectiveAttributes(ctx, child.ID)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(pairs(result)).To(Equal([][2]string{{"policy", "strict"}}))
		})

		It("should keep distinct values for the same key", func() {
			// ARRANGE
			left := newNode(entities.KindGroup)
			right := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			link(child.ID, left.ID)
			link(child.ID, right.ID)
			setAttr(left.ID, "policy", "strict")
			setAttr(right.ID, "policy", "relaxed")

			// ACT
			result, err := resolverService.EffectiveAttributes(ctx, child.ID)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(pairs(result)).To(Equal([][2]string{
				{"policy", "strict"},
				{"policy", "relaxed"},
			}))
		})
	})
})
