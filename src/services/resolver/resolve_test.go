package resolver_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"umsgraph/src/domain"
	"umsgraph/src/domain/entities"
	"umsgraph/src/services/resolver"
	"umsgraph/src/services/schema"
	"umsgraph/src/test_artefacts/memstore"
	"umsgraph/src/test_artefacts/stubs"
)

var _ = Describe("Resolve", func() {
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

	BeforeEach(func() {
		ctx = context.Background()

		nodeStore = memstore.NewNodeStore()
		attributeStore = memstore.NewAttributeStore()
		membershipStore = memstore.NewMembershipStore()
		schemaStore = memstore.NewSchemaStore()
		registry = schema.NewRegistry(schemaStore)
		resolverService = resolver.NewResolverService(nodeStore, attributeStore, membershipStore, registry)
		resolverService.RegisterRewriteHook(domain.KeyStorage, resolver.StorageMarkerHook)
	})

	Context("node does not exist", func() {
		It("should return nil without error", func() {
			// ACT
			result, err := resolverService.Resolve(ctx, 999, "nickname")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})

	Context("own value precedence", func() {
		It("should prefer the node's own value over any ancestor", func() {
			// ARRANGE
			parent := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			link(child.ID, parent.ID)
			setAttr(parent.ID, "theme", "dark")
			setAttr(child.ID, "theme", "light")

			// ACT
			result, err := resolverService.Resolve(ctx, child.ID, "theme")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(string(result.Value)).To(Equal("light"))
			Expect(result.OwnerKind).To(Equal(entities.KindUser))
		})
	})

	Context("inherited value", func() {
		It("should walk up to an ancestor holding the key", func() {
			// ARRANGE
			grandparent := newNode(entities.KindDepartment)
			parent := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			link(child.ID, parent.ID)
			link(parent.ID, grandparent.ID)
			setAttr(grandparent.ID, "quota", "100")

			// ACT
			result, err := resolverService.Resolve(ctx, child.ID, "quota")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(string(result.Value)).To(Equal("100"))
			Expect(result.OwnerKind).To(Equal(entities.KindDepartment))
		})

		It("should pick the first match following edge insertion order", func() {
			// ARRANGE
			first := newNode(entities.KindGroup)
			second := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			link(child.ID, first.ID)
			link(child.ID, second.ID)
			setAttr(first.ID, "region", "south")
			setAttr(second.ID, "region", "north")

			// ACT
			result, err := resolverService.Resolve(ctx, child.ID, "region")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(string(result.Value)).To(Equal("south"))
		})

		It("should explore a whole branch before moving to the next parent", func() {
			// ARRANGE
			deepAncestor := newNode(entities.KindDepartment)
			first := newNode(entities.KindGroup)
			second := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			link(child.ID, first.ID)
			link(child.ID, second.ID)
			link(first.ID, deepAncestor.ID)
			setAttr(deepAncestor.ID, "region", "west")
			setAttr(second.ID, "region", "north")

			// ACT
			result, err := resolverService.Resolve(ctx, child.ID, "region")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(string(result.Value)).To(Equal("west"))
		})
	})

	Context("cyclic membership graph", func() {
		It("should terminate and return nil when no node holds the key", func() {
			// ARRANGE
			a := newNode(entities.KindGroup)
			b := newNode(entities.KindGroup)
			link(a.ID, b.ID)
			link(b.ID, a.ID)

			// ACT
			result, err := resolverService.Resolve(ctx, a.ID, "missing")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})

		It("should still find a value held inside the cycle", func() {
			// ARRANGE
			a := newNode(entities.KindGroup)
			b := newNode(entities.KindGroup)
			link(a.ID, b.ID)
			link(b.ID, a.ID)
			setAttr(b.ID, "flag", "on")

			// ACT
			result, err := resolverService.Resolve(ctx, a.ID, "flag")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(string(result.Value)).To(Equal("on"))
		})
	})

	Context("storage marker rewrite", func() {
		It("should replace the literal true with the resolving node's unique id", func() {
			// ARRANGE
			parent := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			link(child.ID, parent.ID)
			setAttr(parent.ID, domain.KeyStorage, "true")

			// ACT
			result, err := resolverService.Resolve(ctx, child.ID, domain.KeyStorage)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(string(result.Value)).To(Equal(child.UniqueID))
		})

		It("should leave other storage values untouched", func() {
			// ARRANGE
			parent := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			link(child.ID, parent.ID)
			setAttr(parent.ID, domain.KeyStorage, "false")

			// ACT
			result, err := resolverService.Resolve(ctx, child.ID, domain.KeyStorage)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(string(result.Value)).To(Equal("false"))
		})

		It("should not touch the persisted value", func() {
			// ARRANGE
			parent := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			link(child.ID, parent.ID)
			setAttr(parent.ID, domain.KeyStorage, "true")

			// ACT
			_, err := resolverService.Resolve(ctx, child.ID, domain.KeyStorage)
			Expect(err).NotTo(HaveOccurred())

			// ASSERT
			stored, err := attributeStore.GetOwn(ctx, parent.ID, domain.KeyStorage)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(stored.Value)).To(Equal("true"))
		})
	})

	Context("schema decoration", func() {
		It("should carry scope, hidden and declared data type from the schema entry", func() {
			// ARRANGE
			entry := stubs.NewSchemaEntryStub().
				WithKey("password").
				WithHidden(true).
				WithDataType(entities.DataTypeString).
				Get()
			schemaStore.Put(entry)

			node := newNode(entities.KindUser)
			setAttr(node.ID, "password", "secret")

			// ACT
			result, err := resolverService.Resolve(ctx, node.ID, "password")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Hidden).NotTo(BeNil())
			Expect(*result.Hidden).To(BeTrue())
			Expect(result.Scope).NotTo(BeNil())
			Expect(*result.DataType).To(Equal(entities.DataTypeString))
		})

		It("should infer the data type when the schema does not declare one", func() {
			// ARRANGE
			node := newNode(entities.KindUser)
			setAttr(node.ID, "retries", "42")

			// ACT
			result, err := resolverService.Resolve(ctx, node.ID, "retries")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(result.DataType).NotTo(BeNil())
			Expect(*result.DataType).To(Equal(entities.DataTypeInteger))
		})
	})
})
