package classify

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/GriffinCanCode/nativedb/pkg/frontend"
	"github.com/GriffinCanCode/nativedb/pkg/model"
)

func native(t *testing.T, ns, signature string) *model.NativeDefinition {
	t.Helper()
	sig, diags := frontend.ParseSignature("test.md", signature)
	if len(diags) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", signature, diags)
	}
	return &model.NativeDefinition{
		Name:       sig.Name,
		Namespace:  ns,
		Parameters: sig.Parameters,
		ReturnType: sig.ReturnType,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		ns        string
		signature string
		owner     string
		kind      OwnerKind
		ok        bool
	}{
		{"handle in own namespace", "ENTITY", "void SET_ENTITY_COORDS(Entity entity, float x, float y, float z);", "Entity", KindHandle, true},
		{"namespace match ignores case", "entity", "BOOL IS_ENTITY_DEAD(Entity entity);", "Entity", KindHandle, true},
		{"handle in unrelated namespace", "HUD", "void SET_ENTITY_ICON(Entity entity, int icon);", "", KindNamespace, false},
		{"explicit receiver anywhere", "HUD", "void SET_PED_ICON(@this Ped ped, int icon);", "Ped", KindHandle, true},
		{"object maps to prop", "OBJECT", "void DELETE_OBJECT(@this Object obj);", "Prop", KindHandle, true},
		{"blip lives in hud", "HUD", "void REMOVE_BLIP(Blip blip);", "Blip", KindHandle, true},
		{"ped task", "TASK", "void TASK_JUMP(Ped ped, BOOL unused);", "PedTask", KindTask, true},
		{"vehicle task", "TASK", "void TASK_VEHICLE_PARK(Vehicle vehicle);", "VehicleTask", KindTask, true},
		{"entity task", "TASK", "void TASK_ENTITY_THING(Entity entity);", "EntityTask", KindTask, true},
		{"player in task namespace", "TASK", "void TASK_PLAYER(Player player);", "", KindNamespace, false},
		{"ped weapons", "WEAPON", "void GIVE_WEAPON_TO_PED(Ped ped, Hash weapon, int ammo);", "PedWeapons", KindWeapon, true},
		{"vehicle in weapon namespace", "WEAPON", "void SET_VEHICLE_WEAPON(Vehicle vehicle);", "", KindNamespace, false},
		{"vehicle model", "STREAMING", "void REQUEST_VEHICLE_ASSET(Hash model);", "VehicleModel", KindModel, true},
		{"ped model", "STREAMING", "BOOL IS_PED_MODEL_LOADED(Hash model);", "PedModel", KindModel, true},
		{"weapon model", "STREAMING", "void REQUEST_WEAPON_ASSET(Hash weapon);", "WeaponModel", KindModel, true},
		{"default model", "STREAMING", "void REQUEST_MODEL(Hash model);", "Model", KindModel, true},
		{"hash outside streaming", "MISC", "void REQUEST_MODEL_LIKE(Hash model);", "", KindNamespace, false},
		{"no parameters", "ENTITY", "int GET_ENTITY_POOL_SIZE();", "", KindNamespace, false},
		{"handle without wrapper", "FIRE", "void REMOVE_SCRIPT_FIRE(FireId fire);", "", KindNamespace, false},
		{"plain function", "MISC", "BOOL GET_GROUND_Z(float x, float y, float* z);", "", KindNamespace, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, ok := Classify(native(t, tt.ns, tt.signature))
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v (owner %+v)", tt.ok, ok, owner)
			}
			if owner.Name != tt.owner || owner.Kind != tt.kind {
				t.Errorf("expected %s/%s, got %s/%s", tt.owner, tt.kind, owner.Name, owner.Kind)
			}
		})
	}
}

func TestOwnerParents(t *testing.T) {
	owner, ok := Classify(native(t, "PED", "void SET_PED_ARMOUR(Ped ped, int amount);"))
	if !ok {
		t.Fatal("expected Ped owner")
	}
	if owner.Parent != "Entity" {
		t.Errorf("expected parent Entity, got %q", owner.Parent)
	}

	got := Default().Forest().Ancestors("VehicleTask")
	if diff := cmp.Diff([]string{"EntityTask"}, got); diff != "" {
		t.Errorf("ancestors (-want +got):\n%s", diff)
	}
	roots := Default().Forest().Roots()
	if diff := cmp.Diff([]string{"Entity", "EntityTask", "Model"}, roots); diff != "" {
		t.Errorf("roots (-want +got):\n%s", diff)
	}
}

func TestForestRejectsCycles(t *testing.T) {
	tests := []struct {
		name  string
		edges map[string]string
	}{
		{"self", map[string]string{"A": "A"}},
		{"pair", map[string]string{"A": "B", "B": "A"}},
		{"long", map[string]string{"A": "B", "B": "C", "C": "A", "D": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewForest(tt.edges); err == nil {
				t.Error("expected cycle error")
			}
		})
	}
}

func TestKeywordRulesOrder(t *testing.T) {
	rules := KeywordRules{
		Rules: []KeywordRule{
			{Substring: "VEHICLE", Owner: "VehicleModel"},
			{Substring: "PED", Owner: "PedModel"},
		},
		Default: "Model",
	}
	tests := map[string]string{
		"REQUEST_VEHICLE_PED_THING": "VehicleModel",
		"IS_PED_THING":              "PedModel",
		"request_ped_lowercase":     "PedModel",
		"HAS_MODEL_LOADED":          "Model",
	}
	for name, want := range tests {
		if got := rules.Match(name); got != want {
			t.Errorf("%s: expected %s, got %s", name, want, got)
		}
	}
}

func TestNewRejectsConflictingKinds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WeaponOwners = map[string]string{"Ped": "Ped"}
	if _, err := New(cfg); err == nil {
		t.Error("expected error for owner registered as two kinds")
	}
}
