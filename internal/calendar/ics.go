// Package calendar renders return-deadline reminders as iCalendar documents.
package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/sendbackhq/sendback/internal/entity"
)

const dateLayout = "2006-01-02"

// Alarm offsets before the deadline, in days.
var reminderDays = []int{7, 3, 1}

// BuildDeadlineReminder renders an all-day event on the order's deadline
// date with 7/3/1-day display alarms. Fails only when the deadline is
// missing or unparseable.
func BuildDeadlineReminder(order *entity.Order) (string, error) {
	if order.DeadlineDate == "" {
		return "", fmt.Errorf("order %d has no deadline date", order.ID)
	}
	deadline, err := time.Parse(dateLayout, order.DeadlineDate)
	if err != nil {
		return "", fmt.Errorf("order %d deadline %q: %w", order.ID, order.DeadlineDate, err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//sendback//return reminders//EN")

	event := cal.AddEvent(fmt.Sprintf("return-%d@sendback", order.ID))
	event.SetDtStampTime(time.Now().UTC())
	event.SetAllDayStartAt(deadline)
	event.SetAllDayEndAt(deadline.AddDate(0, 0, 1))
	event.SetSummary(fmt.Sprintf("Return deadline: %s order %s", order.Merchant, order.OrderIDText))
	event.SetDescription(fmt.Sprintf("Last day to return your %s purchase (order %s). Purchased %s.",
		order.Merchant, order.OrderIDText, order.PurchaseDate))

	for _, days := range reminderDays {
		alarm := event.AddAlarm()
		alarm.SetAction(ics.ActionDisplay)
		alarm.SetTrigger(fmt.Sprintf("-P%dD", days))
		alarm.SetProperty(ics.ComponentPropertyDescription,
			fmt.Sprintf("%s return window closes in %d day(s)", order.Merchant, days))
	}

	return cal.Serialize(), nil
}
