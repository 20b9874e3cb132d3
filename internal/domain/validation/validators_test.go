package validation

import "testing"

func TestTruckNumber(t *testing.T) {
	t.Run("normalizes to upper case", func(t *testing.T) {
		v, res := TruckNumber("  wxy 1234 ")
		if !res.OK {
			t.Fatalf("expected ok, got %q", res.Err)
		}
		if v != "WXY 1234" {
			t.Fatalf("unexpected value: %q", v)
		}
	})

	t.Run("accepts dashes", func(t *testing.T) {
		if _, res := TruckNumber("BMA-9912"); !res.OK {
			t.Fatalf("expected ok, got %q", res.Err)
		}
	})

	t.Run("rejects too short", func(t *testing.T) {
		if _, res := TruckNumber("AB"); res.OK {
			t.Fatal("expected rejection")
		}
	})

	t.Run("rejects too long", func(t *testing.T) {
		if _, res := TruckNumber("ABCDEFGH12345678"); res.OK {
			t.Fatal("expected rejection")
		}
	})

	t.Run("rejects punctuation", func(t *testing.T) {
		if _, res := TruckNumber("WXY/1234"); res.OK {
			t.Fatal("expected rejection")
		}
	})

	t.Run("rejects empty", func(t *testing.T) {
		if _, res := TruckNumber("   "); res.OK {
			t.Fatal("expected rejection")
		}
	})
}

func TestPhoneNumber(t *testing.T) {
	valid := []string{
		"0123456789",
		"012-3456789",
		"012 345 6789",
		"+60123456789",
		"60123456789",
		"+6012-345 6789",
	}
	for _, v := range valid {
		if _, res := PhoneNumber(v); !res.OK {
			t.Fatalf("expected %q to be accepted, got %q", v, res.Err)
		}
	}

	invalid := []string{
		"12345",
		"02123456789",
		"+1 555 0100",
		"abc",
	}
	for _, v := range invalid {
		if _, res := PhoneNumber(v); res.OK {
			t.Fatalf("expected %q to be rejected", v)
		}
	}

	t.Run("skip sentinels pass through", func(t *testing.T) {
		for _, v := range []string{"N/A", "NA", "0"} {
			got, res := PhoneNumber(v)
			if !res.OK || got != v {
				t.Fatalf("expected sentinel %q to pass, got %q ok=%v", v, got, res.OK)
			}
		}
	})
}

func TestPrice(t *testing.T) {
	t.Run("plain number", func(t *testing.T) {
		p, res := Price("4500.50")
		if !res.OK || p != 4500.50 {
			t.Fatalf("got %v ok=%v err=%q", p, res.OK, res.Err)
		}
	})

	t.Run("commas tolerated", func(t *testing.T) {
		p, res := Price("1,234,567.89")
		if !res.OK || p != 1234567.89 {
			t.Fatalf("got %v ok=%v", p, res.OK)
		}
	})

	t.Run("zero allowed", func(t *testing.T) {
		if _, res := Price("0"); !res.OK {
			t.Fatalf("expected ok, got %q", res.Err)
		}
	})

	t.Run("negative rejected", func(t *testing.T) {
		if _, res := Price("-5"); res.OK {
			t.Fatal("expected rejection")
		}
	})

	t.Run("above ceiling rejected", func(t *testing.T) {
		if _, res := Price("10000001"); res.OK {
			t.Fatal("expected rejection")
		}
	})

	t.Run("garbage rejected", func(t *testing.T) {
		if _, res := Price("five hundred"); res.OK {
			t.Fatal("expected rejection")
		}
	})
}

func TestDate(t *testing.T) {
	cases := map[string]string{
		"2025-03-01": "2025-03-01",
		"01/03/2025": "2025-03-01",
		"01-03-2025": "2025-03-01",
		"01.03.2025": "2025-03-01",
	}
	for in, want := range cases {
		d, res := Date(in)
		if !res.OK {
			t.Fatalf("expected %q to parse, got %q", in, res.Err)
		}
		if got := d.Format("2006-01-02"); got != want {
			t.Fatalf("%q parsed to %q, want %q", in, got, want)
		}
	}

	t.Run("rejects nonsense", func(t *testing.T) {
		if _, res := Date("next tuesday"); res.OK {
			t.Fatal("expected rejection")
		}
	})
}
