package morphscape

// Queries walk every archetype holding the requested components, in the order
// archetypes were created and rows were inserted. Components listed in
// optionals may be missing; the callback then receives nil for them.
// Returning false from the callback stops the walk.
type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }

func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	ids := []componentId{idOf[A](q.ecs)}
	q.ecs.walk(ids, optionals, func(arch *archetype, cols []any) bool {
		as, _ := cols[0].([]A)
		for r, eid := range arch.ids {
			if !m(eid, at(as, r)) {
				return false
			}
		}
		return true
	})
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	ids := []componentId{idOf[A](q.ecs), idOf[B](q.ecs)}
	q.ecs.walk(ids, optionals, func(arch *archetype, cols []any) bool {
		as, _ := cols[0].([]A)
		bs, _ := cols[1].([]B)
		for r, eid := range arch.ids {
			if !m(eid, at(as, r), at(bs, r)) {
				return false
			}
		}
		return true
	})
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool, optionals ...any) {
	ids := []componentId{idOf[A](q.ecs), idOf[B](q.ecs), idOf[C](q.ecs)}
	q.ecs.walk(ids, optionals, func(arch *archetype, cols []any) bool {
		as, _ := cols[0].([]A)
		bs, _ := cols[1].([]B)
		cs, _ := cols[2].([]C)
		for r, eid := range arch.ids {
			if !m(eid, at(as, r), at(bs, r), at(cs, r)) {
				return false
			}
		}
		return true
	})
}

// walk calls visit with the matching columns of every archetype that has all
// required ids. A nil column marks an absent optional component.
func (ecs *Ecs) walk(ids []componentId, optionals []any, visit func(*archetype, []any) bool) {
	opt := identifyOptionals(ecs, optionals...)
	cols := make([]any, len(ids))

	for _, archId := range ecs.order {
		arch := ecs.archetypes[archId]
		if len(arch.ids) == 0 {
			continue
		}
		matched := true
		for i, id := range ids {
			col, ok := arch.columns[id]
			if !ok {
				if _, optional := opt[id]; !optional {
					matched = false
					break
				}
			}
			cols[i] = col
		}
		if !matched {
			continue
		}
		if !visit(arch, cols) {
			return
		}
	}
}

func identifyOptionals(ecs *Ecs, components ...any) set[componentId] {
	res := make(set[componentId], len(components))
	for _, c := range components {
		t, _ := componentValue(c)
		res[ecs.componentIdOf(t)] = struct{}{}
	}
	return res
}

func idOf[T any](ecs *Ecs) componentId {
	var zero T
	t, _ := componentValue(zero)
	return ecs.componentIdOf(t)
}

func at[T any](s []T, r int) *T {
	if s == nil {
		return nil
	}
	return &s[r]
}
