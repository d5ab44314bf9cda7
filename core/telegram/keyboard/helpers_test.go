package keyboard

import "testing"

func TestInlineButtonsRows(t *testing.T) {
	markup := InlineButtonsRows(
		[]InlineBtn{{Text: "Skip", Unique: "skip_step"}, {Text: "Cancel", Unique: "cancel_wizard"}},
		[]InlineBtn{{Text: "Open", URL: "https://example.com/jobs"}},
	)
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(markup.InlineKeyboard))
	}
	first := markup.InlineKeyboard[0]
	if len(first) != 2 || first[0].Unique != "skip_step" || first[1].Unique != "cancel_wizard" {
		t.Fatalf("unexpected first row: %+v", first)
	}
	link := markup.InlineKeyboard[1][0]
	if link.URL != "https://example.com/jobs" || link.Unique != "" {
		t.Fatalf("unexpected link button: %+v", link)
	}
}

func TestReplyButtons(t *testing.T) {
	markup := ReplyButtons([]string{"a", "b"}, []string{"c"})
	if !markup.ResizeKeyboard {
		t.Fatal("reply keyboard should be resized")
	}
	if len(markup.ReplyKeyboard) != 2 || len(markup.ReplyKeyboard[0]) != 2 {
		t.Fatalf("unexpected layout: %+v", markup.ReplyKeyboard)
	}
	if markup.ReplyKeyboard[1][0].Text != "c" {
		t.Fatalf("unexpected label: %+v", markup.ReplyKeyboard[1][0])
	}
}
