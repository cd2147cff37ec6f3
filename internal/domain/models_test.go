package domain

import "testing"

func TestMedication_IsLowStock(t *testing.T) {
	for stock := 0; stock <= 6; stock++ {
		for threshold := 0; threshold <= 6; threshold++ {
			for _, active := range []bool{true, false} {
				m := Medication{Stock: stock, LowStockThreshold: threshold, Active: active}
				want := stock <= threshold && active
				if got := m.IsLowStock(); got != want {
					t.Fatalf("stock=%d threshold=%d active=%v: got %v want %v", stock, threshold, active, got, want)
				}
			}
		}
	}
}

func TestOrderStatus(t *testing.T) {
	open := map[OrderStatus]bool{
		OrderStatusPending:    true,
		OrderStatusProcessing: true,
		OrderStatusShipped:    true,
		OrderStatusDelivered:  false,
		OrderStatusCancelled:  false,
	}
	for s, want := range open {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
		if s.Open() != want {
			t.Fatalf("%s open: got %v want %v", s, s.Open(), want)
		}
	}
	if OrderStatus("lost").Valid() {
		t.Fatalf("unknown status accepted")
	}
}

func TestOrder_Contains(t *testing.T) {
	o := Order{Items: []OrderItem{{ProductID: "p1"}, {ProductID: "p2"}}}
	if !o.Contains("p2") || o.Contains("p3") {
		t.Fatalf("contains mismatch")
	}
}

func TestParseClock(t *testing.T) {
	valid := map[string][2]int{"08:00": {8, 0}, "8:05": {8, 5}, "23:59": {23, 59}, "00:00": {0, 0}}
	for in, want := range valid {
		h, m, err := ParseClock(in)
		if err != nil || h != want[0] || m != want[1] {
			t.Fatalf("%q: got %d:%d err=%v", in, h, m, err)
		}
	}
	for _, in := range []string{"", "24:00", "12:60", "12", "12:5", "ab:cd", "123:00", "-1:00", "12:+5", "+7:30", "-0:30", "+1:00", " 8:0 ", " 08:00"} {
		if _, _, err := ParseClock(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
	if FormatClock(7, 5) != "07:05" {
		t.Fatalf("format")
	}
}
