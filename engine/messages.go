package engine

import (
	"fmt"
	"time"

	"github.com/Selaelo1/telemanBot/model"
)

// User-facing texts. Telegram renders them with HTML parse mode; the
// engine treats them as opaque strings.

const welcomeMessage = `🤖 <b>Welcome to TelemanBot!</b>

I'll help you submit your application. Let's start by collecting some basic information.

📝 <b>Step 1 of 5:</b> What's your <b>first name</b>?

Please type your first name and press send.`

const stepSurnameMessage = `📝 <b>Step 2 of 5:</b> What's your <b>last name/surname</b>?

Please type your last name and press send.`

const stepAgeMessage = `📝 <b>Step 3 of 5:</b> What's your <b>age</b>?

Please enter your age as a number (e.g., 25).`

const stepDOBMessage = `📝 <b>Step 4 of 5:</b> What's your <b>date of birth</b>?

Please enter your date of birth in DD/MM/YYYY format (e.g., 15/03/1995).`

const stepEmailMessage = `📝 <b>Step 5 of 5:</b> What's your <b>email address</b>?

Please enter a valid email address (e.g., john@example.com).`

const (
	errFirstNameMessage = "❌ Please enter a valid first name (at least 2 characters)."
	errLastNameMessage  = "❌ Please enter a valid last name (at least 2 characters)."
	errAgeMessage       = "❌ Please enter a valid age (number between 1 and 119)."
	errDOBMessage       = "❌ Please enter a valid date of birth in DD/MM/YYYY format (e.g., 15/03/1995)."
	errEmailMessage     = "❌ Please enter a valid email address (e.g., john@example.com)."
)

const resetMessage = "Something went wrong. Please send /start to begin again."

const saveFailedMessage = "⚠️ Your application could not be saved. Please send your email address again."

// pendingNoticeMessage tells a returning user their application is
// still in review.
func pendingNoticeMessage(submittedAt time.Time) string {
	return fmt.Sprintf("📋 You already have a pending application submitted on %s. You will receive a response within 48 hours.",
		submittedAt.Format("02/01/2006"))
}

// summaryMessage echoes the collected fields back as the submission
// confirmation.
func summaryMessage(d model.FormData) string {
	return fmt.Sprintf(`📋 <b>Application Summary</b>

Please review your information:

👤 <b>Name:</b> %s %s
🎂 <b>Age:</b> %d
📅 <b>Date of Birth:</b> %s
📧 <b>Email:</b> %s

✅ <b>Application Submitted Successfully!</b>

Your application has been received and is now under review. You will receive a response within <b>48 hours</b>.

Thank you for your application! 🙏`,
		d.FirstName, d.LastName, d.Age, d.DateOfBirth, d.Email)
}

// AcceptanceMessage is the notification sent when a reviewer accepts
// an application.
func AcceptanceMessage(firstName, adminNotes string) string {
	msg := fmt.Sprintf(`🎉 <b>Application Accepted!</b>

Congratulations %s! Your application has been approved.`, firstName)
	if adminNotes != "" {
		msg += fmt.Sprintf("\n\n📝 <b>Admin Notes:</b>\n%s", adminNotes)
	}
	return msg + "\n\n🚀 Welcome aboard!"
}

// DeclineMessage is the notification sent when a reviewer declines an
// application.
func DeclineMessage(firstName, adminNotes string) string {
	msg := fmt.Sprintf(`❌ <b>Application Declined</b>

Hi %s, unfortunately your application has been declined.`, firstName)
	if adminNotes != "" {
		msg += fmt.Sprintf("\n\n📝 <b>Reason:</b>\n%s", adminNotes)
	}
	return msg + "\n\n💡 You can submit a new application at any time by sending /start."
}
