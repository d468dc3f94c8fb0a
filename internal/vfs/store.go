package vfs

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
	"unicode/utf8"
)

// Store owns every node and keeps the path of each node consistent with its ancestors.
// All methods are safe for concurrent use and either apply a change completely or not at all.
type Store struct {
	logger *slog.Logger
	clock  Clock

	mu    sync.RWMutex
	nodes map[uint]*Node
	// order keeps the insertion order of nodes
	order []uint
	// children is an index of child ids by parent id, updated with every mutation
	children map[uint][]uint
	nextID   uint
}

type storeOptions struct {
	clock Clock
}

type StoreOption func(*storeOptions)

func WithClock(clock Clock) StoreOption {
	return func(o *storeOptions) {
		o.clock = clock
	}
}

// NewStore creates a store populated with seed nodes. Paths of seed nodes are recomputed from
// their parents, so only ID, Name, ParentID and the folder or file attributes are required.
func NewStore(logger *slog.Logger, seed []Node, options ...StoreOption) (*Store, error) {
	opts := storeOptions{
		clock: systemClock{},
	}
	for _, option := range options {
		option(&opts)
	}

	store := &Store{
		logger:   logger,
		clock:    opts.clock,
		nodes:    make(map[uint]*Node, len(seed)),
		order:    make([]uint, 0, len(seed)),
		children: make(map[uint][]uint),
		nextID:   1,
	}
	if err := store.load(seed); err != nil {
		return nil, fmt.Errorf("store.load: %w", err)
	}
	return store, nil
}

func (store *Store) load(seed []Node) error {
	now := store.clock.Now()
	for _, seedNode := range seed {
		if seedNode.ID == RootID {
			return fmt.Errorf("%w: node id must not be %d: %s", ErrInvalidArgument, RootID, seedNode.Name)
		}
		if _, ok := store.nodes[seedNode.ID]; ok {
			return fmt.Errorf("%w: duplicated node id %d", ErrInvalidArgument, seedNode.ID)
		}
		if (seedNode.Folder == nil) == (seedNode.File == nil) {
			return fmt.Errorf("%w: node %d must be either a folder or a file", ErrInvalidArgument, seedNode.ID)
		}
		if err := validateName(seedNode.Name); err != nil {
			return fmt.Errorf("validateName: %w", err)
		}
		if seedNode.File != nil {
			if err := validateSize(seedNode.File.Size); err != nil {
				return fmt.Errorf("validateSize: %w", err)
			}
		}
		if seedNode.Folder != nil {
			if err := validateColor(seedNode.Folder.Color); err != nil {
				return fmt.Errorf("validateColor: %w", err)
			}
		}

		node := seedNode.clone()
		if node.Created.IsZero() {
			node.Created = now
		}
		if node.Modified.IsZero() {
			node.Modified = node.Created
		}
		store.nodes[node.ID] = &node
		store.order = append(store.order, node.ID)
		store.nextID = max(store.nextID, node.ID+1)
	}

	for _, id := range store.order {
		node := store.nodes[id]
		if node.ParentID != RootID {
			parent, ok := store.nodes[node.ParentID]
			if !ok {
				return fmt.Errorf("%w: parent %d of node %d", ErrNotFound, node.ParentID, node.ID)
			}
			if !parent.IsFolder() {
				return fmt.Errorf("%w: parent %d of node %d is not a folder", ErrInvalidArgument, node.ParentID, node.ID)
			}
		}
		if sibling := store.findChild(node.ParentID, node.Name); sibling != nil {
			return fmt.Errorf("%w: %s under parent %d", ErrDuplicateName, node.Name, node.ParentID)
		}
		store.children[node.ParentID] = append(store.children[node.ParentID], node.ID)
	}

	// every node must be reachable from the root, otherwise its ancestors form a cycle
	reached := 0
	queue := []uint{RootID}
	for len(queue) > 0 {
		parentID := queue[0]
		queue = queue[1:]
		parentPath := ""
		if parentID != RootID {
			parentPath = store.nodes[parentID].Path
		}
		for _, childID := range store.children[parentID] {
			child := store.nodes[childID]
			child.Path = childPath(parentPath, child.Name)
			reached++
			queue = append(queue, childID)
		}
	}
	if reached != len(store.nodes) {
		return fmt.Errorf("%w: %d nodes are not reachable from the root", ErrCycle, len(store.nodes)-reached)
	}
	return nil
}

// List returns a copy of all nodes in insertion order
func (store *Store) List() []Node {
	store.mu.RLock()
	defer store.mu.RUnlock()

	result := make([]Node, 0, len(store.order))
	for _, id := range store.order {
		result = append(result, store.nodes[id].clone())
	}
	return result
}

func (store *Store) GetByID(id uint) (Node, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	node, err := store.get(id)
	if err != nil {
		return Node{}, err
	}
	return node.clone(), nil
}

func (store *Store) GetByPath(nodePath string) (Node, error) {
	nodePath = CleanPath(nodePath)

	store.mu.RLock()
	defer store.mu.RUnlock()

	for _, id := range store.order {
		if node := store.nodes[id]; node.Path == nodePath {
			return node.clone(), nil
		}
	}
	return Node{}, fmt.Errorf("%w: path %s", ErrNotFound, nodePath)
}

// GetChildren returns the children of parentID in insertion order. RootID returns top-level nodes
func (store *Store) GetChildren(parentID uint) ([]Node, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if parentID != RootID {
		if _, err := store.get(parentID); err != nil {
			return nil, err
		}
	}
	childIDs := store.children[parentID]
	result := make([]Node, 0, len(childIDs))
	for _, childID := range childIDs {
		result = append(result, store.nodes[childID].clone())
	}
	return result, nil
}

type CreateRequest struct {
	ParentID uint
	Name     string
	IsFolder bool
	// Size and Type are ignored for folders
	Size int64
	Type string
}

func (request CreateRequest) validate() error {
	if err := validateName(request.Name); err != nil {
		return err
	}
	if !request.IsFolder {
		if err := validateSize(request.Size); err != nil {
			return err
		}
	}
	return nil
}

func (store *Store) Create(request CreateRequest) (Node, error) {
	if err := request.validate(); err != nil {
		return Node{}, err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	parentPath, err := store.folderPath(request.ParentID)
	if err != nil {
		return Node{}, err
	}
	if store.findChild(request.ParentID, request.Name) != nil {
		return Node{}, fmt.Errorf("%w: %s", ErrDuplicateName, childPath(parentPath, request.Name))
	}

	node := store.insert(request.ParentID, parentPath, request.Name, request.IsFolder, request.Size, request.Type)
	store.logger.Debug("created a node",
		"id", node.ID,
		"path", node.Path,
		"isFolder", node.IsFolder(),
	)
	return node.clone(), nil
}

type UploadRequest struct {
	ParentID uint
	Name     string
	Size     int64
	Type     string
}

// Upload creates a file like Create, but renames it to "name (n).ext" with the smallest free n
// instead of failing if a sibling already has the same name.
func (store *Store) Upload(request UploadRequest) (Node, error) {
	if err := validateName(request.Name); err != nil {
		return Node{}, err
	}
	if err := validateSize(request.Size); err != nil {
		return Node{}, err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	parentPath, err := store.folderPath(request.ParentID)
	if err != nil {
		return Node{}, err
	}
	name := store.uniqueName(request.ParentID, request.Name)
	node := store.insert(request.ParentID, parentPath, name, false, request.Size, request.Type)
	store.logger.Debug("uploaded a file",
		"id", node.ID,
		"path", node.Path,
		"size", request.Size,
	)
	return node.clone(), nil
}

// Rename renames a node and rewrites the paths of all of its descendants.
// Renaming a node to its current name doesn't change anything
func (store *Store) Rename(id uint, newName string) (Node, error) {
	if err := validateName(newName); err != nil {
		return Node{}, err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	node, err := store.get(id)
	if err != nil {
		return Node{}, err
	}
	if node.Name == newName {
		return node.clone(), nil
	}
	if sibling := store.findChild(node.ParentID, newName); sibling != nil {
		return Node{}, fmt.Errorf("%w: %s", ErrDuplicateName, childPath(store.pathOf(node.ParentID), newName))
	}

	oldPath := node.Path
	now := store.clock.Now()
	node.Name = newName
	node.Path = childPath(store.pathOf(node.ParentID), newName)
	node.Modified = now
	rewritten := store.rewriteDescendantPaths(node, now)
	store.logger.Debug("renamed a node",
		"id", id,
		"oldPath", oldPath,
		"newPath", node.Path,
		"rewrittenDescendants", rewritten,
	)
	return node.clone(), nil
}

// Delete deletes a node and all of its descendants. It returns the deleted ids, descendants first
func (store *Store) Delete(id uint) ([]uint, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	node, err := store.get(id)
	if err != nil {
		return nil, err
	}
	deletedIDs := store.collectPostOrder(id)

	deleted := make(map[uint]struct{}, len(deletedIDs))
	for _, deletedID := range deletedIDs {
		deleted[deletedID] = struct{}{}
		delete(store.nodes, deletedID)
		delete(store.children, deletedID)
	}
	store.children[node.ParentID] = slices.DeleteFunc(store.children[node.ParentID], func(childID uint) bool {
		return childID == id
	})
	store.order = slices.DeleteFunc(store.order, func(orderID uint) bool {
		_, ok := deleted[orderID]
		return ok
	})

	store.logger.Debug("deleted a node",
		"id", id,
		"path", node.Path,
		"deletedCount", len(deletedIDs),
	)
	return deletedIDs, nil
}

// Move moves a node under newParentID and rewrites the paths of all of its descendants
func (store *Store) Move(id uint, newParentID uint) (Node, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	node, err := store.get(id)
	if err != nil {
		return Node{}, err
	}
	if newParentID == id {
		return Node{}, fmt.Errorf("%w: %s into itself", ErrCycle, node.Path)
	}
	if newParentID != RootID {
		destination, err := store.get(newParentID)
		if err != nil {
			return Node{}, fmt.Errorf("destination: %w", err)
		}
		if store.isAncestor(id, newParentID) {
			return Node{}, fmt.Errorf("%w: %s into %s", ErrCycle, node.Path, destination.Path)
		}
		if !destination.IsFolder() {
			return Node{}, fmt.Errorf("%w: destination %s is not a folder", ErrInvalidArgument, destination.Path)
		}
	}
	if sibling := store.findChild(newParentID, node.Name); sibling != nil && sibling.ID != id {
		return Node{}, fmt.Errorf("%w: %s", ErrDuplicateName, sibling.Path)
	}
	if node.ParentID == newParentID {
		return node.clone(), nil
	}

	oldPath := node.Path
	now := store.clock.Now()
	store.children[node.ParentID] = slices.DeleteFunc(store.children[node.ParentID], func(childID uint) bool {
		return childID == id
	})
	store.children[newParentID] = append(store.children[newParentID], id)
	node.ParentID = newParentID
	node.Path = childPath(store.pathOf(newParentID), node.Name)
	node.Modified = now
	rewritten := store.rewriteDescendantPaths(node, now)
	store.logger.Debug("moved a node",
		"id", id,
		"oldPath", oldPath,
		"newPath", node.Path,
		"rewrittenDescendants", rewritten,
	)
	return node.clone(), nil
}

// SetColor tags a folder with a color from the Palette. ColorNone removes the tag
func (store *Store) SetColor(id uint, color Color) (Node, error) {
	if err := validateColor(color); err != nil {
		return Node{}, err
	}
	return store.updateFolder(id, func(folder *FolderAttributes) {
		folder.Color = color
	})
}

func (store *Store) ToggleFavorite(id uint) (Node, error) {
	return store.updateFolder(id, func(folder *FolderAttributes) {
		folder.IsFavorite = !folder.IsFavorite
	})
}

func (store *Store) updateFolder(id uint, update func(*FolderAttributes)) (Node, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	node, err := store.get(id)
	if err != nil {
		return Node{}, err
	}
	if !node.IsFolder() {
		return Node{}, fmt.Errorf("%w: %s", ErrNotFolder, node.Path)
	}
	update(node.Folder)
	node.Modified = store.clock.Now()
	return node.clone(), nil
}

func (store *Store) get(id uint) (*Node, error) {
	node, ok := store.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return node, nil
}

// folderPath returns the path of a folder which a new node can be created in
func (store *Store) folderPath(parentID uint) (string, error) {
	if parentID == RootID {
		return "", nil
	}
	parent, err := store.get(parentID)
	if err != nil {
		return "", fmt.Errorf("parent: %w", err)
	}
	if !parent.IsFolder() {
		return "", fmt.Errorf("%w: parent %s is not a folder", ErrInvalidArgument, parent.Path)
	}
	return parent.Path, nil
}

func (store *Store) pathOf(id uint) string {
	if id == RootID {
		return ""
	}
	return store.nodes[id].Path
}

func (store *Store) findChild(parentID uint, name string) *Node {
	for _, childID := range store.children[parentID] {
		if child := store.nodes[childID]; child.Name == name {
			return child
		}
	}
	return nil
}

func (store *Store) uniqueName(parentID uint, name string) string {
	if store.findChild(parentID, name) == nil {
		return name
	}
	stem, extension := splitExtension(name)
	for n := 1; ; n++ {
		suffix := fmt.Sprintf(" (%d)%s", n, extension)
		if utf8.RuneCountInString(suffix) >= MaxNameLength {
			stem, extension = name, ""
			suffix = fmt.Sprintf(" (%d)", n)
		}
		// the stem is shortened so that the candidate stays within MaxNameLength
		candidate := truncateRunes(stem, MaxNameLength-utf8.RuneCountInString(suffix)) + suffix
		if store.findChild(parentID, candidate) == nil {
			return candidate
		}
	}
}

func truncateRunes(value string, maximum int) string {
	runes := []rune(value)
	if len(runes) <= maximum {
		return value
	}
	return string(runes[:maximum])
}

func (store *Store) insert(parentID uint, parentPath string, name string, isFolder bool, size int64, fileType string) *Node {
	now := store.clock.Now()
	node := &Node{
		ID:       store.nextID,
		Name:     name,
		ParentID: parentID,
		Path:     childPath(parentPath, name),
		Created:  now,
		Modified: now,
	}
	if isFolder {
		node.Folder = &FolderAttributes{}
	} else {
		node.File = &FileAttributes{
			Type: fileType,
			Size: size,
		}
	}
	store.nextID++

	store.nodes[node.ID] = node
	store.order = append(store.order, node.ID)
	store.children[parentID] = append(store.children[parentID], node.ID)
	return node
}

// isAncestor reports whether ancestorID is one of the ancestors of id
func (store *Store) isAncestor(ancestorID uint, id uint) bool {
	for current := store.nodes[id]; current != nil && current.ParentID != RootID; current = store.nodes[current.ParentID] {
		if current.ParentID == ancestorID {
			return true
		}
	}
	return false
}

func (store *Store) collectPostOrder(id uint) []uint {
	result := make([]uint, 0)
	for _, childID := range store.children[id] {
		result = append(result, store.collectPostOrder(childID)...)
	}
	return append(result, id)
}

// rewriteDescendantPaths recomputes the paths of all descendants of node from node.Path
func (store *Store) rewriteDescendantPaths(node *Node, now time.Time) int {
	rewritten := 0
	queue := []*Node{node}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, childID := range store.children[parent.ID] {
			child := store.nodes[childID]
			child.Path = childPath(parent.Path, child.Name)
			child.Modified = now
			rewritten++
			queue = append(queue, child)
		}
	}
	return rewritten
}
