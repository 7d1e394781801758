package morphscape

import (
	"encoding/binary"
	"hash/fnv"
	"reflect"
	"slices"
	"sync"
)

type EntityId uint64
type archetypeId uint64
type archetypeKey []componentId
type componentId uint32
type row int
type set[T comparable] = map[T]struct{}

type entityLocation struct {
	arch archetypeId
	row  row
}

// archetype stores every entity sharing one exact component set. Rows are
// dense: removing a row moves the last one into its place.
type archetype struct {
	id      archetypeId
	key     archetypeKey
	ids     []EntityId
	columns map[componentId]any
}

type Ecs struct {
	archetypes map[archetypeId]*archetype
	order      []archetypeId
	location   map[EntityId]entityLocation

	idLock          sync.Mutex
	entityIdCounter EntityId

	componentLock sync.Mutex
	typeIds       map[reflect.Type]componentId
	idTypes       []reflect.Type
}

func MakeEcs() Ecs {
	return Ecs{
		archetypes: make(map[archetypeId]*archetype),
		location:   make(map[EntityId]entityLocation),
		typeIds:    make(map[reflect.Type]componentId),
	}
}

func (ecs *Ecs) addEntity(components ...any) EntityId {
	return ecs.insertEntity(ecs.nextEntityId(), components...)
}

func (ecs *Ecs) insertEntity(entityId EntityId, components ...any) EntityId {
	arch := ecs.archetypeFor(ecs.keyOf(components...))
	r := ecs.appendRow(arch, entityId)
	for _, c := range components {
		ecs.writeComponent(arch, r, c)
	}
	ecs.location[entityId] = entityLocation{arch: arch.id, row: r}
	return entityId
}

func (ecs *Ecs) hasEntity(entityId EntityId) bool {
	_, ok := ecs.location[entityId]
	return ok
}

func (ecs *Ecs) removeEntity(entityId EntityId) {
	loc, ok := ecs.location[entityId]
	if !ok {
		return
	}
	ecs.removeRow(ecs.archetypes[loc.arch], loc.row)
	delete(ecs.location, entityId)
}

func (ecs *Ecs) addComponents(entityId EntityId, components ...any) {
	loc, ok := ecs.location[entityId]
	if !ok {
		return
	}
	src := ecs.archetypes[loc.arch]
	dst := ecs.archetypeFor(dedupAndSortKey(append(slices.Clone(src.key), ecs.keyOf(components...)...)))

	if dst.id == src.id {
		for _, c := range components {
			ecs.writeComponent(src, loc.row, c)
		}
		return
	}
	r := ecs.moveEntity(entityId, src, loc.row, dst)
	for _, c := range components {
		ecs.writeComponent(dst, r, c)
	}
}

func (ecs *Ecs) removeComponents(entityId EntityId, components ...any) {
	loc, ok := ecs.location[entityId]
	if !ok {
		return
	}
	drop := make(set[componentId])
	for _, c := range components {
		t, _ := componentValue(c)
		drop[ecs.componentIdOf(t)] = struct{}{}
	}
	src := ecs.archetypes[loc.arch]
	var key archetypeKey
	for _, id := range src.key {
		if _, gone := drop[id]; !gone {
			key = append(key, id)
		}
	}
	dst := ecs.archetypeFor(key)
	if dst.id != src.id {
		ecs.moveEntity(entityId, src, loc.row, dst)
	}
}

// entityComponents returns copies of every component on the entity.
func (ecs *Ecs) entityComponents(entityId EntityId) []any {
	loc, ok := ecs.location[entityId]
	if !ok {
		return nil
	}
	arch := ecs.archetypes[loc.arch]
	res := make([]any, 0, len(arch.key))
	for _, id := range arch.key {
		res = append(res, columnGet(arch.columns[id], int(loc.row)).Interface())
	}
	return res
}

func (ecs *Ecs) entityCount() int {
	return len(ecs.location)
}

// moveEntity copies the shared columns into a fresh row of dst and frees the
// old row.
func (ecs *Ecs) moveEntity(entityId EntityId, src *archetype, srcRow row, dst *archetype) row {
	r := ecs.appendRow(dst, entityId)
	for _, id := range dst.key {
		if col, ok := src.columns[id]; ok {
			columnSet(dst.columns[id], int(r), columnGet(col, int(srcRow)))
		}
	}
	ecs.removeRow(src, srcRow)
	ecs.location[entityId] = entityLocation{arch: dst.id, row: r}
	return r
}

func (ecs *Ecs) appendRow(arch *archetype, entityId EntityId) row {
	r := row(len(arch.ids))
	arch.ids = append(arch.ids, entityId)
	for _, id := range arch.key {
		arch.columns[id] = columnAppendZero(arch.columns[id])
	}
	return r
}

func (ecs *Ecs) removeRow(arch *archetype, r row) {
	last := len(arch.ids) - 1
	if int(r) != last {
		moved := arch.ids[last]
		arch.ids[r] = moved
		for _, id := range arch.key {
			columnSet(arch.columns[id], int(r), columnGet(arch.columns[id], last))
		}
		ecs.location[moved] = entityLocation{arch: arch.id, row: r}
	}
	arch.ids = arch.ids[:last]
	for _, id := range arch.key {
		arch.columns[id] = columnTruncate(arch.columns[id], last)
	}
}

func (ecs *Ecs) writeComponent(arch *archetype, r row, component any) {
	t, v := componentValue(component)
	columnSet(arch.columns[ecs.componentIdOf(t)], int(r), v)
}

func (ecs *Ecs) archetypeFor(key archetypeKey) *archetype {
	id := archetypeIdOf(key)
	if arch, ok := ecs.archetypes[id]; ok {
		return arch
	}
	arch := &archetype{
		id:      id,
		key:     key,
		columns: make(map[componentId]any, len(key)),
	}
	for _, cid := range key {
		arch.columns[cid] = columnMake(ecs.componentType(cid))
	}
	ecs.archetypes[id] = arch
	ecs.order = append(ecs.order, id)
	return arch
}

// keyOf is the canonical archetype key: sorted, deduplicated component ids.
func (ecs *Ecs) keyOf(components ...any) archetypeKey {
	key := make(archetypeKey, 0, len(components))
	for _, c := range components {
		t, _ := componentValue(c)
		key = append(key, ecs.componentIdOf(t))
	}
	return dedupAndSortKey(key)
}

func dedupAndSortKey(key archetypeKey) archetypeKey {
	slices.Sort(key)
	return slices.Compact(key)
}

// archetypeIdOf hashes the key; collisions are not handled.
func archetypeIdOf(key archetypeKey) archetypeId {
	h := fnv.New64a()
	var b [4]byte
	for _, id := range key {
		binary.LittleEndian.PutUint32(b[:], uint32(id))
		h.Write(b[:])
	}
	return archetypeId(h.Sum64())
}

func (ecs *Ecs) nextEntityId() EntityId {
	ecs.idLock.Lock()
	defer ecs.idLock.Unlock()
	id := ecs.entityIdCounter
	ecs.entityIdCounter++
	return id
}

func (ecs *Ecs) componentIdOf(t reflect.Type) componentId {
	ecs.componentLock.Lock()
	defer ecs.componentLock.Unlock()
	if id, ok := ecs.typeIds[t]; ok {
		return id
	}
	id := componentId(len(ecs.idTypes))
	ecs.typeIds[t] = id
	ecs.idTypes = append(ecs.idTypes, t)
	return id
}

func (ecs *Ecs) componentType(id componentId) reflect.Type {
	ecs.componentLock.Lock()
	defer ecs.componentLock.Unlock()
	if int(id) >= len(ecs.idTypes) {
		panic("component id not registered")
	}
	return ecs.idTypes[id]
}
