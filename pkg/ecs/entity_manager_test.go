package ecs

import "testing"

// 测试组件类型定义
type testTimerComponent struct {
	Name string
}

type testPhaseComponent struct {
	Phase int
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testTimerComponent{Name: "gameover"})

	comp, ok := GetComponent[*testTimerComponent](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if comp.Name != "gameover" {
		t.Errorf("Component data mismatch, expected gameover, got %s", comp.Name)
	}

	// 不同类型的组件互不影响
	if _, ok := GetComponent[*testPhaseComponent](em, id); ok {
		t.Error("Unexpected component of another type")
	}
}

func TestAddComponentToMissingEntity(t *testing.T) {
	em := NewEntityManager()

	// 不存在的实体：静默忽略
	AddComponent(em, EntityID(42), &testTimerComponent{})
	if HasComponent[*testTimerComponent](em, EntityID(42)) {
		t.Error("Component should not be attached to a missing entity")
	}
}

func TestRemoveComponentIsImmediate(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testTimerComponent{})

	RemoveComponent[*testTimerComponent](em, id)

	if HasComponent[*testTimerComponent](em, id) {
		t.Error("Component should be removed immediately")
	}
	if !em.Exists(id) {
		t.Error("Entity should still exist after removing a component")
	}
}

func TestDestroyEntityIsDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPhaseComponent{})

	em.DestroyEntity(id)

	// 标记后、清理前仍然存在
	if !em.Exists(id) {
		t.Error("Entity should exist until RemoveMarkedEntities")
	}

	em.RemoveMarkedEntities()

	if em.Exists(id) {
		t.Error("Entity should be gone after RemoveMarkedEntities")
	}
	if HasComponent[*testPhaseComponent](em, id) {
		t.Error("Components should be gone with the entity")
	}
	if em.EntityCount() != 0 {
		t.Errorf("Expected 0 entities, got %d", em.EntityCount())
	}
}

func TestGetEntitiesWith1Sorted(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 5)
	for i := 0; i < 5; i++ {
		id := em.CreateEntity()
		ids = append(ids, id)
		if i%2 == 0 {
			AddComponent(em, id, &testTimerComponent{})
		}
	}

	result := GetEntitiesWith1[*testTimerComponent](em)
	if len(result) != 3 {
		t.Fatalf("Expected 3 entities, got %d", len(result))
	}
	want := []EntityID{ids[0], ids[2], ids[4]}
	for i := range want {
		if result[i] != want[i] {
			t.Errorf("result[%d] = %d, want %d", i, result[i], want[i])
		}
	}
}
