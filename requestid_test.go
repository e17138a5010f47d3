package moqt

import "testing"

func TestRequestIDCounterParity(t *testing.T) {
	client := newRequestIDCounter(RoleClient, 1000)
	server := newRequestIDCounter(RoleServer, 1000)

	for i := 0; i < 3; i++ {
		id, err := client.issue()
		if err != nil {
			t.Fatalf("client.issue: %v", err)
		}
		if id%2 != 0 {
			t.Fatalf("client issued odd ID %d", id)
		}
	}
	for i := 0; i < 3; i++ {
		id, err := server.issue()
		if err != nil {
			t.Fatalf("server.issue: %v", err)
		}
		if id%2 != 1 {
			t.Fatalf("server issued even ID %d", id)
		}
	}
}

func TestRequestIDCounterExhaustedAtMax(t *testing.T) {
	c := newRequestIDCounter(RoleClient, 2)
	if _, err := c.issue(); err != nil {
		t.Fatalf("issue(0): %v", err)
	}
	if _, err := c.issue(); err != nil {
		t.Fatalf("issue(2): %v", err)
	}
	if _, err := c.issue(); !IsResourceExhaustedErr(err) {
		t.Fatalf("issue past max: got %v, want errResourceExhausted", err)
	}
}

func TestRequestIDCounterSetMaxOnlyRaises(t *testing.T) {
	c := newRequestIDCounter(RoleClient, 10)
	c.setMax(5)
	if c.max != 10 {
		t.Fatalf("setMax lowered ceiling: max = %d", c.max)
	}
	c.setMax(20)
	if c.max != 20 {
		t.Fatalf("setMax did not raise ceiling: max = %d", c.max)
	}
}
