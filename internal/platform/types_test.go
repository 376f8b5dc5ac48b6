package platform

import "testing"

func TestParseRect_Valid(t *testing.T) {
	r, err := ParseRect("10,20,300,400")
	if err != nil {
		t.Fatal(err)
	}
	if r.X != 10 || r.Y != 20 || r.Width != 300 || r.Height != 400 {
		t.Errorf("got %+v, want {10 20 300 400}", r)
	}
}

func TestParseRect_WithSpacesAndFractions(t *testing.T) {
	r, err := ParseRect("0, 0.5, 1440, 900")
	if err != nil {
		t.Fatal(err)
	}
	if r.Y != 0.5 || r.Width != 1440 || r.Height != 900 {
		t.Errorf("got %+v", r)
	}
}

func TestParseRect_Invalid(t *testing.T) {
	tests := []string{
		"",
		"10,20,300",
		"10,20,300,400,500",
		"a,b,c,d",
		"10,20,abc,400",
		"0,0,0,100",
		"0,0,100,-1",
	}
	for _, s := range tests {
		if _, err := ParseRect(s); err == nil {
			t.Errorf("ParseRect(%q) should fail", s)
		}
	}
}

func TestStaticScreen_Bounds(t *testing.T) {
	r, _ := ParseRect("0,0,1920,1080")
	got, err := StaticScreen(r).Bounds()
	if err != nil {
		t.Fatal(err)
	}
	if got != r {
		t.Errorf("got %+v, want %+v", got, r)
	}
}
