package tree_test

import (
	"context"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"umsgraph/src/domain"
	"umsgraph/src/domain/entities"
	"umsgraph/src/services/tree"
	"umsgraph/src/test_artefacts/memstore"
	"umsgraph/src/test_artefacts/stubs"
)

var _ = Describe("TreeService", func() {
	var (
		treeStore      *memstore.TreeStore
		attributeStore *memstore.AttributeStore
		treeService    *tree.TreeService
		ctx            context.Context
	)

	newTreeNode := func(parentID int64, name string) entities.TreeNode {
		node := stubs.NewTreeNodeStub().WithParentID(parentID).WithName(name).Get()
		Expect(treeService.Create(ctx, &node)).To(Succeed())
		return node
	}

	BeforeEach(func() {
		ctx = context.Background()

		treeStore = memstore.NewTreeStore()
		attributeStore = memstore.NewAttributeStore()
		treeService = tree.NewTreeService(treeStore, attributeStore)
	})

	Context("Create", func() {
		It("should reject a blank name", func() {
			// ARRANGE
			node := stubs.NewTreeNodeStub().WithName("   ").Get()

			// ACT
			err := treeService.Create(ctx, &node)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrInvalidName))
		})

		It("should reject an unknown type", func() {
			// ARRANGE
			node := stubs.NewTreeNodeStub().WithType(42).Get()

			// ACT
			err := treeService.Create(ctx, &node)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrInvalidType))
		})

		It("should reject a missing parent", func() {
			// ARRANGE
			node := stubs.NewTreeNodeStub().WithParentID(999).Get()

			// ACT
			err := treeService.Create(ctx, &node)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrParentNotFound))
		})

		It("should reject a duplicate sibling name", func() {
			// ARRANGE
			root := newTreeNode(0, "engineering")
			newTreeNode(root.ID, "backend")
			duplicate := stubs.NewTreeNodeStub().WithParentID(root.ID).WithName("backend").Get()

			// ACT
			err := treeService.Create(ctx, &duplicate)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrDuplicateName))
		})

		It("should allow the same name under different parents", func() {
			// ARRANGE
			first := newTreeNode(0, "engineering")
			second := newTreeNode(0, "sales")
			newTreeNode(first.ID, "ops")
			sibling := stubs.NewTreeNodeStub().WithParentID(second.ID).WithName("ops").Get()

			// ACT
			err := treeService.Create(ctx, &sibling)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Context("Update", func() {
		It("should reject moving a node under its own descendant", func() {
			// ARRANGE
			root := newTreeNode(0, "root")
			child := newTreeNode(root.ID, "child")
			grandchild := newTreeNode(child.ID, "grandchild")

			moved := root
			moved.ParentID = grandchild.ID

			// ACT
			err := treeService.Update(ctx, &moved)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrParentCycle))
		})

		It("should reject moving a node under itself", func() {
			// ARRANGE
			root := newTreeNode(0, "root")
			moved := root
			moved.ParentID = root.ID

			// ACT
			err := treeService.Update(ctx, &moved)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrParentCycle))
		})

		It("should keep the node's own name valid on a no-move update", func() {
			// ARRANGE
			root := newTreeNode(0, "root")
			child := newTreeNode(root.ID, "child")

			renamed := child
			renamed.Description = "updated"

			// ACT
			err := treeService.Update(ctx, &renamed)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject renaming into a sibling's name", func() {
			// ARRANGE
			root := newTreeNode(0, "root")
			newTreeNode(root.ID, "first")
			second := newTreeNode(root.ID, "second")

			renamed := second
			renamed.Name = "first"

			// ACT
			err := treeService.Update(ctx, &renamed)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrDuplicateName))
		})

		It("should reject a missing node", func() {
			// ARRANGE
			ghost := stubs.NewTreeNodeStub().Get()
			ghost.ID = 999

			// ACT
			err := treeService.Update(ctx, &ghost)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrNodeNotFound))
		})
	})

	Context("Remove", func() {
		It("should refuse a node with children when cascade is off", func() {
			// ARRANGE
			root := newTreeNode(0, "root")
			newTreeNode(root.ID, "child")

			// ACT
			err := treeService.Remove(ctx, root.ID, false)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrChildrenExist))
		})

		It("should drop the whole subtree with cascade", func() {
			// ARRANGE
			root := newTreeNode(0, "root")
			child := newTreeNode(root.ID, "child")
			grandchild := newTreeNode(child.ID, "grandchild")
			survivor := newTreeNode(0, "survivor")

			// ACT
			err := treeService.Remove(ctx, root.ID, true)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			for _, id := range []int64{root.ID, child.ID, grandchild.ID} {
				gone, getErr := treeStore.GetByID(ctx, id)
				Expect(getErr).NotTo(HaveOccurred())
				Expect(gone).To(BeNil())
			}
			kept, err := treeStore.GetByID(ctx, survivor.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(kept).NotTo(BeNil())
		})

		It("should block removal while any subtree node is bound by a template attribute", func() {
			// ARRANGE
			root := newTreeNode(0, "root")
			child := newTreeNode(root.ID, "child")

			binding := stubs.NewAttributeStub().
				WithNodeID(42).
				WithKey(domain.KeyTemplateID).
				WithValue(strconv.FormatInt(child.ID, 10)).
				Get()
			_, err := attributeStore.Upsert(ctx, &binding)
			Expect(err).NotTo(HaveOccurred())

			// ACT
			removeErr := treeService.Remove(ctx, root.ID, true)

			// ASSERT
			Expect(removeErr).To(MatchError(domain.ErrReferenced))
			kept, err := treeStore.GetByID(ctx, child.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(kept).NotTo(BeNil(), "nothing is deleted when the check fails")
		})

		It("should reject a missing node", func() {
			// ACT
			err := treeService.Remove(ctx, 999, false)

			// ASSERT
			Expect(err).To(MatchError(domain.ErrNodeNotFound))
		})
	})

	Context("BuildTree", func() {
		It("should assemble the forest with children nested under parents", func() {
			// ARRANGE
			root := newTreeNode(0, "root")
			child := newTreeNode(root.ID, "child")
			newTreeNode(child.ID, "grandchild")

			// ACT
			roots, err := treeService.BuildTree(ctx, nil)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(roots).To(HaveLen(1))
			Expect(roots[0].Name).To(Equal("root"))
			Expect(roots[0].Children).To(HaveLen(1))
			Expect(roots[0].Children[0].Children).To(HaveLen(1))
		})

		It("should promote nodes with filtered-out parents to roots", func() {
			// ARRANGE
			root := stubs.NewTreeNodeStub().WithName("apps").WithType(entities.TreeTypeApplication).Get()
			Expect(treeService.Create(ctx, &root)).To(Succeed())

			orphan := stubs.NewTreeNodeStub().
				WithParentID(root.ID).
				WithName("team").
				WithType(entities.TreeTypeDepartment).
				Get()
			Expect(treeService.Create(ctx, &orphan)).To(Succeed())

			departmentOnly := entities.TreeTypeDepartment

			// ACT
			roots, err := treeService.BuildTree(ctx, &departmentOnly)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(roots).To(HaveLen(1))
			Expect(roots[0].Name).To(Equal("team"))
		})
	})
})
