package bot

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	tele "gopkg.in/telebot.v4"

	"github.com/hustlex/hustlexbot/core/logger"
	"github.com/hustlex/hustlexbot/core/telegram/format"
	tghelpers "github.com/hustlex/hustlexbot/core/telegram/helpers"
	"github.com/hustlex/hustlexbot/core/telegram/keyboard"
	"github.com/hustlex/hustlexbot/internal/jobs"
	"github.com/hustlex/hustlexbot/internal/profile"
)

// Menu labels double as command aliases.
const (
	LabelProfileSetup = "👤 Profile Setup"
	LabelViewProfile  = "📋 View Profile"
	LabelBrowseJobs   = "💼 Browse Jobs"
	LabelAbout        = "ℹ️ About HustleX"
)

// Callback keys of the inline wizard buttons.
const (
	CallbackSkip     = "skip_step"
	CallbackCancel   = "cancel_wizard"
	CallbackComplete = "complete_profile"
)

const rule = "━━━━━━━━━━━━━━━━━━━━━"

// Surface is where a prompt is delivered.
type Surface int

const (
	// SurfaceReply sends a new message.
	SurfaceReply Surface = iota
	// SurfaceEdit rewrites the message that carried the pressed button.
	SurfaceEdit
)

// Recipient holds the user fields interpolated into prompts. Values are raw;
// the renderers escape them.
type Recipient struct {
	FirstName   string
	DisplayName string
	Handle      string
}

func recipientOf(rec profile.Record) Recipient {
	return Recipient{FirstName: rec.FirstName, DisplayName: rec.DisplayName, Handle: rec.Handle}
}

func (r Recipient) firstName() string {
	if r.FirstName != "" {
		return format.Markdown(clip(r.FirstName, nameLimit))
	}
	if r.DisplayName != "" {
		return format.Markdown(clip(r.DisplayName, nameLimit))
	}
	return "there"
}

func (r Recipient) handle() string {
	if r.Handle == "" {
		return "N/A"
	}
	return format.Markdown(r.Handle)
}

func footer(tagline string) string {
	return rule + "\n💼 *HustleX* - " + tagline + "\n" + rule
}

// RenderStep returns the prompt for step. Both delivery surfaces use it.
// Steps without a prompt render as "".
func RenderStep(step profile.Step, r Recipient) string {
	switch step {
	case profile.StepProfileSetup:
		return "🎯 *HustleX Profile Setup Wizard* 🎯\n\n" +
			"Welcome " + r.firstName() + "! Let's create your professional profile step by step.\n\n" +
			rule + "\n📋 *Wizard Progress:*\n" +
			"🔸 Profile Picture → 🎓 Education → 🏆 Certificates → ✅ Complete\n\n" +
			footer("Your Professional Journey Starts Here")

	case profile.StepWaitingForImage:
		return stepHeader(step, "📸", "Profile Picture") +
			"Please send your profile picture to represent yourself professionally.\n\n" +
			rule + "\n💡 *Tips:*\n" +
			"• Use a clear, professional photo\n" +
			"• Face should be clearly visible\n" +
			"• Recent photo preferred\n\n" +
			footer("Building Your Professional Profile")

	case profile.StepWaitingForEducation:
		return stepHeader(step, "🎓", "Education") +
			"Please tell us about your educational background.\n\n" +
			rule + "\n📝 *Examples:*\n" +
			"• Bachelor's in Computer Science, Addis Ababa University (2018-2022)\n" +
			"• Master's in Software Engineering, Harvard University (2020-2022)\n" +
			"• Self-taught developer with online certifications\n\n" +
			footer("Building Your Professional Profile")

	case profile.StepWaitingForCertificates:
		return stepHeader(step, "🏆", "Certificates & Certifications") +
			"Please list your professional certificates and certifications.\n\n" +
			rule + "\n📝 *Examples:*\n" +
			"• AWS Certified Developer Associate\n" +
			"• Google Cloud Professional Cloud Architect\n" +
			"• PMP (Project Management Professional)\n" +
			"• Cisco CCNA, Microsoft Azure certifications\n\n" +
			footer("Building Your Professional Profile")
	}
	return ""
}

func stepHeader(step profile.Step, icon, title string) string {
	return fmt.Sprintf("%s *Step %d of %d: %s* %s\n\n", icon, step.Number(), profile.TotalSteps, title, icon)
}

// RenderWelcome greets the user on /start. The name links to the user's account.
func RenderWelcome(userID int64, r Recipient) string {
	name := r.DisplayName
	if name == "" {
		name = r.FirstName
	}
	mention := "there"
	if label := format.LinkText(clip(name, nameLimit)); label != "" {
		mention = fmt.Sprintf("[%s](tg://user?id=%d)", label, userID)
	}
	return "🌟 *Welcome to HustleX Freelance Platform!* 🌟\n\n" +
		"Hello " + mention + "! 👋\n\n" +
		"I'm your HustleX assistant bot. I help you create and manage your professional profile on our freelance platform.\n\n" +
		"🚀 *What can I do for you?*\n" +
		"• Set up your professional profile\n" +
		"• Update your education and certificates\n" +
		"• Showcase your skills to potential clients\n\n" +
		"Use the buttons below to get started!\n\n" +
		footer("Connecting Talent with Opportunity")
}

// RenderImageSaved confirms the stored profile picture.
func RenderImageSaved() string {
	return "✅ *Profile Picture Saved!* ✅\n\n" +
		"Great! Your profile picture has been uploaded successfully.\n\n" +
		footer("Building Your Professional Profile")
}

func uploaded(ok bool) string {
	if ok {
		return "✅ Uploaded"
	}
	return "❌ Not uploaded"
}

// Field limits keep rendered cards inside Telegram's message limits: the
// profile card doubles as a photo caption (1024) and the completion summary
// carries both answers in one message (4096).
const (
	nameLimit         = 64
	cardFieldLimit    = 250
	summaryFieldLimit = 1500
)

// clip shortens s to at most n runes, marking the cut with an ellipsis.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimRightFunc(string(runes[:n-1]), unicode.IsSpace) + "…"
}

func orDefault(v, def string, limit int) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return format.Markdown(clip(v, limit))
}

// RenderCompletion summarises a finished profile. The edit surface gets the
// congratulation card, the reply surface the thank-you card with menu hint.
func RenderCompletion(rec profile.Record, surface Surface) string {
	r := recipientOf(rec)
	if surface == SurfaceEdit {
		return "🎉 *Congratulations!* 🎉\n\n" +
			"Your HustleX profile has been completed successfully!\n\n" +
			rule + "\n✅ *Profile Summary:*\n" +
			"👤 Name: " + orDefault(rec.DisplayName, "N/A", nameLimit) + "\n" +
			"📧 Username: @" + r.handle() + "\n" +
			"🎓 Education: " + orDefault(rec.Education, "N/A", summaryFieldLimit) + "\n" +
			"🏆 Certificates: " + orDefault(rec.Certificates, "N/A", summaryFieldLimit) + "\n\n" +
			rule + "\n🚀 *Ready to freelance?*\n" +
			"Visit HustleX platform to start applying for jobs!\n\n" +
			"💼 *HustleX* - Your Professional Journey Starts Here\n" + rule
	}
	return "🎉 *Profile Setup Complete!* 🎉\n\n" +
		"Thank you " + r.firstName() + "! Your professional profile is now ready.\n\n" +
		rule + "\n📋 *Your Profile:*\n" +
		"• Education: " + orDefault(rec.Education, "Not provided", summaryFieldLimit) + "\n" +
		"• Certificates: " + orDefault(rec.Certificates, "Not provided", summaryFieldLimit) + "\n" +
		"• Profile Picture: " + uploaded(rec.HasImage()) + "\n\n" +
		footer("Connecting Talent with Opportunity") + "\n\n" +
		"Use the menu buttons below to view your profile or make changes."
}

// RenderCancelled confirms that the wizard was left.
func RenderCancelled() string {
	return "❌ *Wizard Cancelled* ❌\n\n" +
		"Profile setup has been cancelled. You can start again anytime.\n\n" +
		footer("Connecting Talent with Opportunity")
}

// RenderProfileCard is the caption of the profile view.
func RenderProfileCard(rec profile.Record) string {
	r := recipientOf(rec)
	return "👤 *Your HustleX Profile* 👤\n\n" +
		rule + "\n📖 *Personal Information:*\n" +
		"• Name: " + orDefault(rec.DisplayName, "N/A", nameLimit) + "\n" +
		"• Username: @" + r.handle() + "\n\n" +
		"🎓 *Education:*\n" + orDefault(rec.Education, "Not provided", cardFieldLimit) + "\n\n" +
		"🏆 *Certificates & Certifications:*\n" + orDefault(rec.Certificates, "Not provided", cardFieldLimit) + "\n\n" +
		"📸 *Profile Picture:* " + uploaded(rec.HasImage()) + "\n\n" +
		footer("Your Professional Profile")
}

// RenderAbout describes the platform under its configured name.
func RenderAbout(platform, website, supportEmail string) string {
	return "🌟 " + format.Bold("About "+platform) + " 🌟\n\n" +
		rule + "\n💼 " + format.Bold("What is "+platform+"?") + "\n\n" +
		format.Markdown(platform) + " is Ethiopia's premier freelance platform connecting talented professionals with businesses worldwide.\n\n" +
		"🚀 *Our Mission:*\n" +
		"To empower freelancers and businesses by providing a seamless, secure, and efficient marketplace for talent acquisition and project collaboration.\n\n" +
		rule + "\n🎯 *Key Features:*\n" +
		"• ✅ Verified freelancers and companies\n" +
		"• ✅ Project management tools\n" +
		"• ✅ Skill-based job matching\n" +
		"• ✅ Professional networking\n\n" +
		rule + "\n📱 *Get Started:*\n" +
		"1. Complete your professional profile\n" +
		"2. Browse available projects\n" +
		"3. Apply for jobs that match your skills\n" +
		"4. Start freelancing today!\n\n" +
		footer("Connecting Talent with Opportunity") + "\n\n" +
		"🌐 Visit our website: " + format.Markdown(website) + "\n" +
		"📧 Contact: " + format.Markdown(supportEmail)
}

// RenderJobs lists the sectors and, when available, the latest postings.
func RenderJobs(latest []jobs.Job, baseURL string) string {
	var b strings.Builder
	b.WriteString("💼 *Browse Latest Jobs on HustleX* 💼\n\n")
	b.WriteString(rule + "\n")
	b.WriteString("Ready to find your next opportunity? Our platform has variety of jobs in different sectors:\n\n")
	for _, s := range jobs.Sectors {
		b.WriteString("• " + s + "\n")
	}
	if len(latest) > 0 {
		b.WriteString("\n🆕 *Latest openings:*\n")
		for i, j := range latest {
			title := format.LinkText(clip(j.Title, 80))
			if title == "" {
				title = "View job"
			}
			fmt.Fprintf(&b, "%d. [%s](%s)", i+1, title, j.Link(baseURL))
			var meta []string
			for _, v := range []string{j.Company, j.City, j.Budget} {
				if strings.TrimSpace(v) != "" {
					meta = append(meta, format.Markdown(v))
				}
			}
			if len(meta) > 0 {
				b.WriteString(" - " + strings.Join(meta, " · "))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\nClick the button below to see all open positions!\n")
	b.WriteString(rule)
	return b.String()
}

// RenderHelp lists commands and menu usage.
func RenderHelp() string {
	return "🆘 *HustleX Bot Help* 🆘\n\n" +
		rule + "\n🤖 *Available Commands:*\n\n" +
		"/start - Start the bot and show main menu\n" +
		"/help - Show this help message\n" +
		"/profile - View your current profile\n" +
		"/setup - Start the profile setup wizard\n" +
		"/jobs - Browse the latest jobs\n" +
		"/about - Learn about HustleX\n\n" +
		rule + "\n📱 *How to Use:*\n\n" +
		"1. *Profile Setup:*\n" +
		"   - Click \"" + LabelProfileSetup + "\"\n" +
		"   - Upload your profile picture\n" +
		"   - Add your education details\n" +
		"   - List your certificates\n\n" +
		"2. *View Profile:*\n" +
		"   - Click \"" + LabelViewProfile + "\" to see your completed profile\n\n" +
		"3. *About:*\n" +
		"   - Click \"" + LabelAbout + "\" for platform information\n\n" +
		footer("Your Freelance Journey Starts Here")
}

// RenderStats summarises sessions for the operator.
func RenderStats(st profile.Stats) string {
	return fmt.Sprintf("📊 *Sessions:* %d\n✅ *Completed profiles:* %d\n🧭 *In wizard:* %d",
		st.Sessions, st.Completed, st.InWizard)
}

// Fixed guidance and rejection texts.
const (
	msgUnknownText     = "Please use the menu buttons or type /start to begin."
	msgUnknownPhoto    = "Please start the profile setup wizard first by clicking '" + LabelProfileSetup + "'."
	msgUnknownCallback = "This action is no longer available."
	msgCannotSkip      = "Cannot skip this step. Please provide the required information."
	msgNotCompleted    = "❌ You haven't completed your profile setup yet. Please use the Profile Setup button to get started."
	msgAdminOnly       = "This command is only available to the operator."
	msgSlowDown        = "Please slow down a little."
)

// MissingFieldMessage is the rejection shown when completing without field.
func MissingFieldMessage(field profile.Field) string {
	switch field {
	case profile.FieldProfileImage:
		return "❌ Please upload a profile picture first."
	case profile.FieldEducation:
		return "❌ Please add your education information first."
	case profile.FieldCertificates:
		return "❌ Please add your certificates first."
	}
	return "❌ Your profile is incomplete."
}

// GuidanceFor tells the user what the current step expects.
func GuidanceFor(step profile.Step) string {
	switch step {
	case profile.StepWaitingForImage:
		return "📸 Please send a photo for your profile picture, or tap ⏭️ Skip."
	case profile.StepWaitingForEducation:
		return "🎓 Please type your education details as a text message, or tap ⏭️ Skip."
	case profile.StepWaitingForCertificates:
		return "🏆 Please type your certificates as a text message, or tap ⏭️ Skip."
	}
	return msgUnknownText
}

// MainMenu is the reply keyboard shown outside the wizard.
func MainMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{LabelProfileSetup},
		[]string{LabelViewProfile},
		[]string{LabelBrowseJobs},
		[]string{LabelAbout},
	)
}

// WizardKeyboard holds the navigation buttons of step. The last step also
// offers explicit completion.
func WizardKeyboard(step profile.Step) *tele.ReplyMarkup {
	if !step.Collecting() {
		return nil
	}
	rows := [][]keyboard.InlineBtn{
		{{Text: "⏭️ Skip", Unique: CallbackSkip}},
		{{Text: "❌ Cancel", Unique: CallbackCancel}},
	}
	if step == profile.StepWaitingForCertificates {
		rows = append(rows, []keyboard.InlineBtn{{Text: "✅ Complete Profile", Unique: CallbackComplete}})
	}
	return keyboard.InlineButtonsRows(rows...)
}

// CompleteKeyboard is attached to the incomplete-profile notice.
func CompleteKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtons(keyboard.InlineBtn{Text: "✅ Complete Profile", Unique: CallbackComplete})
}

// JobsKeyboard links to the job listings page.
func JobsKeyboard(baseURL string) *tele.ReplyMarkup {
	return keyboard.InlineButtons(keyboard.InlineBtn{
		Text: "🔎 See all open positions",
		URL:  strings.TrimRight(baseURL, "/") + "/job-listings",
	})
}

// Deliver puts text on surface. Edits fall back to a new message when the
// original cannot be edited, and a reply keyboard always goes out as a new
// message because Telegram only accepts inline markup on edits.
func Deliver(c tele.Context, surface Surface, text string, markup *tele.ReplyMarkup) error {
	if surface == SurfaceEdit && c.Callback() != nil && !hasReplyKeyboard(markup) {
		err := tghelpers.EditMD(c, text, markup)
		if err == nil {
			return nil
		}
		logger.Debug(tghelpers.BuildContext(c), "tg", "edit.fallback",
			slog.String("err", logger.SanitizeLimit(err.Error(), 200)),
		)
	}
	return tghelpers.SendMD(c, text, markup)
}

func hasReplyKeyboard(m *tele.ReplyMarkup) bool {
	return m != nil && (len(m.ReplyKeyboard) > 0 || m.RemoveKeyboard)
}
