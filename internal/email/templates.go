package email

import (
	"fmt"
	"strings"
)

func registrationConfirmation(name string) Message {
	return Message{
		Subject: "HealthDost | Application Received - Dr. " + name,
		Body: fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: auto;">
  <h1>Welcome to the Network</h1>
  <p>Dear Dr. %s,</p>
  <p>Thank you for registering with <strong>HealthDost Rural Network</strong>. We have received your application and clinical credentials.</p>
  <p><strong>What happens next?</strong></p>
  <ul>
    <li>Our Medical Board will verify your MCI/State Council registration number.</li>
    <li>Your uploaded documents (Degree, ID Proof) will undergo an integrity check.</li>
    <li>Verification typically takes <strong>24 to 48 hours</strong>.</li>
  </ul>
  <p>You can check your real-time status on our portal using your registered email.</p>
  <p>HealthDost Medical Board Team</p>
</div>`, name),
	}
}

func verificationApproved(name string) Message {
	return Message{
		Subject: "HealthDost | Credentials Verified - Account Activated",
		Body: fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: auto;">
  <h1>Verification Successful!</h1>
  <p>Congratulations Dr. %s,</p>
  <p>Your professional credentials have been verified by our medical board. Your account is now <strong>Active</strong> and visible in the specialist directory.</p>
  <ol>
    <li>Login to the Physician Hub.</li>
    <li>Review your consultation hours and availability.</li>
    <li>Wait for kiosk agents to match you with patients.</li>
  </ol>
  <p>Welcome to India's largest rural health initiative.</p>
</div>`, name),
	}
}

func verificationRejected(name, reason string) Message {
	return Message{
		Subject: "HealthDost | Action Required: Application Status Update",
		Body: fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: auto;">
  <h1>Update Required</h1>
  <p>Dear Dr. %s,</p>
  <p>Our board has reviewed your application and found that some details require correction before we can proceed with activation.</p>
  <p><strong>Reason for Rejection:</strong> %s</p>
  <p>Please re-login to the registration portal and re-upload the relevant documents or correct your registration details. Once submitted, your profile will enter the review queue again.</p>
  <p>Need help? Contact support at helpdesk@healthdost.in</p>
</div>`, name, reason),
	}
}

func documentReminder(name string, missingDocs []string) Message {
	items := make([]string, 0, len(missingDocs))
	for _, doc := range missingDocs {
		items = append(items, "<li>"+doc+"</li>")
	}
	return Message{
		Subject: "HealthDost | Missing Documents - Action Required",
		Body: fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: auto;">
  <h1>Reminder: Complete your Profile</h1>
  <p>Hello Dr. %s,</p>
  <p>Our team noticed that your registration is incomplete. To proceed with the verification, please upload the following documents:</p>
  <ul>%s</ul>
  <p>Complete applications are prioritized and usually verified within 24 hours.</p>
</div>`, name, strings.Join(items, "")),
	}
}

func emergencyAlert(doctorName, patientName, symptoms string) Message {
	return Message{
		Subject: "PRIORITY EMERGENCY ALERT: Incoming Patient Case",
		Body: fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: auto;">
  <h1>EMERGENCY CASE INCOMING</h1>
  <p>Dear Dr. %s,</p>
  <p>An emergency case has been routed to your station from a Rural Kiosk.</p>
  <p><strong>Patient:</strong> %s<br/>
  <strong>Symptoms:</strong> %s<br/>
  <strong>Urgency:</strong> HIGH CRITICAL</p>
  <p>Please prepare for an immediate consultation.</p>
</div>`, doctorName, patientName, symptoms),
	}
}
