package vfs

import "fmt"

type TreeNode struct {
	Node
	Children []*TreeNode `json:"children,omitempty"`
}

// BuildTree returns the subtrees under rootParentID. Folders have children, files are leaves.
// RootID builds the whole tree
func (store *Store) BuildTree(rootParentID uint) ([]*TreeNode, error) {
	return store.buildTree(rootParentID, true)
}

// BuildFolderTree is BuildTree without files
func (store *Store) BuildFolderTree(rootParentID uint) ([]*TreeNode, error) {
	return store.buildTree(rootParentID, false)
}

func (store *Store) buildTree(rootParentID uint, includeFiles bool) ([]*TreeNode, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if rootParentID != RootID {
		if _, err := store.get(rootParentID); err != nil {
			return nil, fmt.Errorf("store.get: %w", err)
		}
	}
	return store.createTree(rootParentID, includeFiles), nil
}

func (store *Store) createTree(parentID uint, includeFiles bool) []*TreeNode {
	childIDs := store.children[parentID]
	result := make([]*TreeNode, 0, len(childIDs))
	for _, childID := range childIDs {
		child := store.nodes[childID]
		if !includeFiles && !child.IsFolder() {
			continue
		}

		treeNode := &TreeNode{
			Node: child.clone(),
		}
		if child.IsFolder() {
			treeNode.Children = store.createTree(childID, includeFiles)
		}
		result = append(result, treeNode)
	}
	return result
}

// Favorites returns favorite folders in insertion order
func (store *Store) Favorites() []Node {
	store.mu.RLock()
	defer store.mu.RUnlock()

	result := make([]Node, 0)
	for _, id := range store.order {
		if node := store.nodes[id]; node.IsFavorite() {
			result = append(result, node.clone())
		}
	}
	return result
}

// Flatten returns the ids of trees in pre-order
func Flatten(trees []*TreeNode) []uint {
	result := make([]uint, 0)
	for _, tree := range trees {
		result = append(result, tree.ID)
		result = append(result, Flatten(tree.Children)...)
	}
	return result
}
