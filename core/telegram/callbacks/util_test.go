package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackData(t *testing.T) {
	cases := []struct {
		data    string
		unique  string
		payload string
	}{
		{"\fskip_step", "skip_step", ""},
		{"\fcancel_wizard|", "cancel_wizard", ""},
		{"\fcomplete_profile|42|x", "complete_profile", "42|x"},
		{"plain", "plain", ""},
		{"", "", ""},
	}
	for _, tc := range cases {
		unique, payload := ParseCallbackData(&tele.Callback{Data: tc.data})
		if unique != tc.unique || payload != tc.payload {
			t.Fatalf("ParseCallbackData(%q) = (%q, %q), want (%q, %q)", tc.data, unique, payload, tc.unique, tc.payload)
		}
	}
	if u, p := ParseCallbackData(nil); u != "" || p != "" {
		t.Fatalf("nil callback should parse to empty values")
	}
}
