package membership_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"umsgraph/src/domain"
	"umsgraph/src/domain/entities"
	"umsgraph/src/services/membership"
	"umsgraph/src/test_artefacts/memstore"
	"umsgraph/src/test_artefacts/stubs"
)

var _ = Describe("MembershipService", func() {
	var (
		nodeStore         *memstore.NodeStore
		attributeStore    *memstore.AttributeStore
		membershipStore   *memstore.MembershipStore
		membershipService *membership.MembershipService
		ctx               context.Context
	)

	newNode := func(kind entities.NodeKind) entities.Node {
		node := stubs.NewNodeStub().WithKind(kind).Get()
		Expect(nodeStore.Insert(ctx, &node)).To(Succeed())
		return node
	}

	BeforeEach(func() {
		ctx = context.Background()

		nodeStore = memstore.NewNodeStore()
		attributeStore = memstore.NewAttributeStore()
		membershipStore = memstore.NewMembershipStore()
		membershipService = membership.NewMembershipService(nodeStore, attributeStore, membershipStore)
	})

	Context("Link", func() {
		It("should reject a missing child node", func() {
			// ARRANGE
			parent := newNode(entities.KindGroup)

			// ACT
			err := membershipService.Link(ctx, 999, parent.ID)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrNodeNotFound))
		})

		It("should reject a missing parent node", func() {
			// ARRANGE
			child := newNode(entities.KindUser)

			// ACT
			err := membershipService.Link(ctx, child.ID, 999)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrParentNotFound))
		})

		It("should reject linking a node to itself", func() {
			// ARRANGE
			node := newNode(entities.KindGroup)

			// ACT
			err := membershipService.Link(ctx, node.ID, node.ID)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrParentCycle))
		})

		It("should reject a duplicate edge", func() {
			// ARRANGE
			parent := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			Expect(membershipService.Link(ctx, child.ID, parent.ID)).To(Succeed())

			// ACT
			err := membershipService.Link(ctx, child.ID, parent.ID)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrEdgeExists))
		})

		It("should allow multiple parents of different kinds", func() {
			// ARRANGE
			group := newNode(entities.KindGroup)
			department := newNode(entities.KindDepartment)
			child := newNode(entities.KindUser)

			// ACT
			Expect(membershipService.Link(ctx, child.ID, group.ID)).To(Succeed())
			Expect(membershipService.Link(ctx, child.ID, department.ID)).To(Succeed())

			// ASSERT
			parents, err := membershipService.ParentsOf(ctx, child.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(parents).To(HaveLen(2))
		})
	})

	Context("Unlink", func() {
		It("should remove the edge and tolerate repeats", func() {
			// ARRANGE
			parent := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			Expect(membershipService.Link(ctx, child.ID, parent.ID)).To(Succeed())

			// ACT
			Expect(membershipService.Unlink(ctx, child.ID, parent.ID)).To(Succeed())
			Expect(membershipService.Unlink(ctx, child.ID, parent.ID)).To(Succeed())

			// ASSERT
			parents, err := membershipService.ParentsOf(ctx, child.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(parents).To(BeEmpty())
		})
	})

	Context("ReplaceParents", func() {
		It("should swap only edges whose parent matches the category", func() {
			// ARRANGE
			oldGroup := newNode(entities.KindGroup)
			newGroup := newNode(entities.KindGroup)
			department := newNode(entities.KindDepartment)
			child := newNode(entities.KindUser)
			Expect(membershipService.Link(ctx, child.ID, oldGroup.ID)).To(Succeed())
			Expect(membershipService.Link(ctx, child.ID, department.ID)).To(Succeed())

			// ACT
			err := membershipService.ReplaceParents(ctx, child.ID, []int64{newGroup.ID}, entities.KindGroup)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			parents, err := membershipService.ParentsOf(ctx, child.ID)
			Expect(err).NotTo(HaveOccurred())

			ids := make([]int64, 0, len(parents))
			for _, parent := range parents {
				ids = append(ids, parent.ID)
			}
			Expect(ids).To(ConsistOf(newGroup.ID, department.ID))
		})

		It("should reject a new parent of the wrong kind before removing anything", func() {
			// ARRANGE
			oldGroup := newNode(entities.KindGroup)
			department := newNode(entities.KindDepartment)
			child := newNode(entities.KindUser)
			Expect(membershipService.Link(ctx, child.ID, oldGroup.ID)).To(Succeed())

			// ACT
			err := membershipService.ReplaceParents(ctx, child.ID, []int64{department.ID}, entities.KindGroup)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrInvalidType))
			parents, listErr := membershipService.ParentsOf(ctx, child.ID)
			Expect(listErr).NotTo(HaveOccurred())
			Expect(parents).To(HaveLen(1), "existing edges must survive a failed replace")
		})
	})

	Context("CreateNode", func() {
		It("should reject an unclassified kind", func() {
			// ACT
			_, err := membershipService.CreateNode(ctx, entities.KindUnknown, nil)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrInvalidType))
		})

		It("should mint a unique id and write the starter attributes", func() {
			// ACT
			node, err := membershipService.CreateNode(ctx, entities.KindUser, map[string][]byte{
				"nickname": []byte("kim"),
			})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(node.UniqueID).NotTo(BeEmpty())

			attrs, err := attributeStore.ListOwn(ctx, node.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(attrs).To(HaveLen(1))
			Expect(attrs[0].Key).To(Equal("nickname"))
		})
	})

	Context("DeleteNode", func() {
		It("should refuse while the node still has member children", func() {
			// ARRANGE
			parent := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			Expect(membershipService.Link(ctx, child.ID, parent.ID)).To(Succeed())

			// ACT
			err := membershipService.DeleteNode(ctx, parent.ID)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrChildrenExist))
		})

		It("should remove the node with its attributes and upward edges", func() {
			// ARRANGE
			parent := newNode(entities.KindGroup)
			child := newNode(entities.KindUser)
			Expect(membershipService.Link(ctx, child.ID, parent.ID)).To(Succeed())

			attr := stubs.NewAttributeStub().WithNodeID(child.ID).WithKey("nickname").WithValue("kim").Get()
			_, err := attributeStore.Upsert(ctx, &attr)
			Expect(err).NotTo(HaveOccurred())

			// ACT
			Expect(membershipService.DeleteNode(ctx, child.ID)).To(Succeed())

			// ASSERT
			gone, err := nodeStore.GetByID(ctx, child.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(gone).To(BeNil())

			attrs, err := attributeStore.ListOwn(ctx, child.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(attrs).To(BeEmpty())

			edges, err := membershipStore.ParentsOf(ctx, child.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(edges).To(BeEmpty())
		})
	})
})
