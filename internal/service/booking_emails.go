package service

import (
	"fmt"

	"smartassist/internal/models"
)

// buildApprovalEmail renders the admin mail with one-click approve and
// reject links pointing back at the booking action endpoint.
func buildApprovalEmail(booking *models.Booking, baseURL string) string {
	approveLink := fmt.Sprintf("%s/bookings/%s/action?status=approved", baseURL, booking.ID)
	rejectLink := fmt.Sprintf("%s/bookings/%s/action?status=rejected", baseURL, booking.ID)

	return fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <div style="background: #1F4E79; padding: 20px; text-align: center;">
            <h1 style="color: white; margin: 0;">CSIS SmartAssist</h1>
            <p style="color: #D6E4F0; margin: 5px 0;">New Booking Request</p>
        </div>
        <div style="padding: 30px; background: #f9f9f9;">
            <h2 style="color: #1F4E79;">Booking Details</h2>
            <table style="width: 100%%; border-collapse: collapse;">
                <tr><td style="padding: 8px; font-weight: bold;">Requester:</td><td style="padding: 8px;">%s</td></tr>
                <tr style="background:#eee;"><td style="padding: 8px; font-weight: bold;">Resource:</td><td style="padding: 8px;">%s</td></tr>
                <tr><td style="padding: 8px; font-weight: bold;">Date:</td><td style="padding: 8px;">%s</td></tr>
                <tr style="background:#eee;"><td style="padding: 8px; font-weight: bold;">Time:</td><td style="padding: 8px;">%s</td></tr>
                <tr><td style="padding: 8px; font-weight: bold;">Duration:</td><td style="padding: 8px;">%s</td></tr>
            </table>
            <div style="margin-top: 30px; text-align: center;">
                <a href="%s" style="background:#22c55e;color:white;padding:12px 30px;text-decoration:none;border-radius:6px;margin-right:15px;font-weight:bold;">&#10003; Approve</a>
                <a href="%s" style="background:#ef4444;color:white;padding:12px 30px;text-decoration:none;border-radius:6px;font-weight:bold;">&#10007; Reject</a>
            </div>
        </div>
    </div>`,
		booking.Requester, booking.Resource, booking.Date, booking.Time, booking.Duration,
		approveLink, rejectLink,
	)
}

// buildStatusEmail renders the requester notification after a decision.
func buildStatusEmail(booking *models.Booking) string {
	color := "#22c55e"
	if booking.Status != models.BookingStatusApproved {
		color = "#ef4444"
	}

	remarksBlock := ""
	if booking.Remarks != "" {
		remarksBlock = fmt.Sprintf(`<p><strong>Remarks:</strong> %s</p>`, booking.Remarks)
	}

	return fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <div style="background: #1F4E79; padding: 20px; text-align: center;">
            <h1 style="color: white; margin: 0;">CSIS SmartAssist</h1>
        </div>
        <div style="padding: 30px;">
            <div style="background:%s;color:white;padding:15px;border-radius:8px;text-align:center;font-size:20px;font-weight:bold;margin-bottom:20px;">
                Booking %s
            </div>
            <p>Your booking for <strong>%s</strong> on <strong>%s</strong> has been <strong>%s</strong>.</p>
            %s
        </div>
    </div>`,
		color, statusLabel(booking.Status),
		booking.Resource, booking.Date, booking.Status,
		remarksBlock,
	)
}
