package mirror_test

import (
	"context"
	"math/big"
	"net"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/zoobzio/mirror"
)

type engineTestAddress struct {
	City string
	Zip  string `mirror:"zip"`
}

type engineTestStatus int

const (
	engineTestStatusActive engineTestStatus = iota
	engineTestStatusClosed
)

type engineTestAccount struct {
	ID       string
	Balance  mirror.Decimal
	Opened   time.Time
	Status   engineTestStatus
	Tags     []string
	Nickname *string
	Address  *engineTestAddress
	Meta     map[string]int
	Ref      net.IP
	Site     *url.URL
	Big      big.Int
}

func newTestEngine(t *testing.T) *mirror.Engine {
	t.Helper()
	eng := mirror.NewEngine()
	mirror.Register[engineTestAccount](eng, "Account")
	mirror.Register[engineTestAddress](eng, "Address")
	mirror.Enum(eng, map[string]engineTestStatus{
		"active": engineTestStatusActive,
		"closed": engineTestStatusClosed,
	})
	return eng
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	eng := newTestEngine(t)

	balance, err := mirror.NewDecimal("19.99")
	if err != nil {
		t.Fatalf("NewDecimal() error: %v", err)
	}
	nickname := "ace"
	site, err := url.Parse("https://example.com/path")
	if err != nil {
		t.Fatalf("url.Parse() error: %v", err)
	}
	big := *big.NewInt(123456789012345)

	in := engineTestAccount{
		ID:       "acct-1",
		Balance:  balance,
		Opened:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Status:   engineTestStatusClosed,
		Tags:     []string{"vip", "trial"},
		Nickname: &nickname,
		Address:  &engineTestAddress{City: "Metropolis", Zip: "00001"},
		Meta:     map[string]int{"logins": 4},
		Ref:      net.ParseIP("192.0.2.1"),
		Site:     site,
		Big:      big,
	}

	env, err := eng.Serialize(context.Background(), in)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if !env.Diagnostics().Empty() {
		t.Fatalf("unexpected diagnostics: %v", env.Diagnostics().Entries())
	}

	out, err := mirror.Deserialize[engineTestAccount](eng, context.Background(), env)
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}

	if out.ID != in.ID {
		t.Errorf("ID = %q, want %q", out.ID, in.ID)
	}
	if out.Balance.String() != in.Balance.String() {
		t.Errorf("Balance = %s, want %s", out.Balance.String(), in.Balance.String())
	}
	if !out.Opened.Equal(in.Opened) {
		t.Errorf("Opened = %v, want %v", out.Opened, in.Opened)
	}
	if out.Status != in.Status {
		t.Errorf("Status = %v, want %v", out.Status, in.Status)
	}
	if len(out.Tags) != 2 || out.Tags[0] != "vip" || out.Tags[1] != "trial" {
		t.Errorf("Tags = %v, want [vip trial]", out.Tags)
	}
	if out.Nickname == nil || *out.Nickname != nickname {
		t.Errorf("Nickname = %v, want %q", out.Nickname, nickname)
	}
	if out.Address == nil || out.Address.City != "Metropolis" || out.Address.Zip != "00001" {
		t.Errorf("Address = %+v, want {Metropolis 00001}", out.Address)
	}
	if out.Meta["logins"] != 4 {
		t.Errorf("Meta[logins] = %d, want 4", out.Meta["logins"])
	}
	if out.Ref == nil || !out.Ref.Equal(in.Ref) {
		t.Errorf("Ref = %v, want %v", out.Ref, in.Ref)
	}
	if out.Site == nil || out.Site.String() != site.String() {
		t.Errorf("Site = %v, want %v", out.Site, site)
	}
	if out.Big.Cmp(&in.Big) != 0 {
		t.Errorf("Big = %v, want %v", out.Big, in.Big)
	}
}

func TestSerializeNilPointerFieldRoundTrips(t *testing.T) {
	eng := newTestEngine(t)
	in := engineTestAccount{ID: "acct-2"}

	env, err := eng.Serialize(context.Background(), in)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	out, err := mirror.Deserialize[engineTestAccount](eng, context.Background(), env)
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	if out.Nickname != nil {
		t.Errorf("Nickname = %v, want nil", out.Nickname)
	}
	if out.Address != nil {
		t.Errorf("Address = %v, want nil", out.Address)
	}
}

func TestDeserializeToleratesUnknownMember(t *testing.T) {
	eng := newTestEngine(t)
	env, err := eng.Serialize(context.Background(), engineTestAddress{City: "Gotham"})
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}

	env.Fields = append(env.Fields, mirror.SerializedMember{Name: "CountryCode", TypeName: "string"})
	if _, err := mirror.Deserialize[engineTestAddress](eng, context.Background(), env); err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
}

func TestBlacklistedTypeSerializesAsNull(t *testing.T) {
	eng := newTestEngine(t)
	eng.Blacklist(reflect.TypeOf(engineTestAddress{}))

	env, err := eng.Serialize(context.Background(), engineTestAddress{City: "Smallville"})
	if err != nil {
		t.Fatalf("Serialize() error: %v, want a null envelope instead", err)
	}
	if !env.IsNull() {
		t.Errorf("IsNull() = false, want true for a blacklisted type")
	}
}

func TestBlacklistedFieldSerializesAsNullAtItsPosition(t *testing.T) {
	eng := newTestEngine(t)
	eng.Blacklist(reflect.TypeOf(engineTestAddress{}))

	in := engineTestAccount{ID: "acct-3", Address: &engineTestAddress{City: "Smallville"}}
	env, err := eng.Serialize(context.Background(), in)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}

	var addrField *mirror.SerializedMember
	for i := range env.Fields {
		if env.Fields[i].Name == "Address" {
			addrField = &env.Fields[i]
		}
	}
	if addrField == nil {
		t.Fatal("expected an Address field entry to still be present")
	}
	if !addrField.IsNull() {
		t.Errorf("Address field IsNull() = false, want true for a blacklisted element type")
	}
}

func TestDepthExceededErrorsOutRatherThanStackOverflowing(t *testing.T) {
	type node struct {
		Next *node
	}
	eng := mirror.NewEngine(mirror.WithMaxDepth(3))
	mirror.Register[node](eng, "node")

	n4 := &node{}
	n3 := &node{Next: n4}
	n2 := &node{Next: n3}
	n1 := &node{Next: n2}
	root := node{Next: n1}

	_, err := eng.Serialize(context.Background(), root)
	if err == nil {
		t.Fatal("Serialize() expected a depth-exceeded error")
	}
}
