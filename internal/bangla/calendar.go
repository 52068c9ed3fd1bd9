package bangla

import (
	"fmt"
	"time"
)

var weekdays = [...]string{
	time.Sunday:    "রবিবার",
	time.Monday:    "সোমবার",
	time.Tuesday:   "মঙ্গলবার",
	time.Wednesday: "বুধবার",
	time.Thursday:  "বৃহস্পতিবার",
	time.Friday:    "শুক্রবার",
	time.Saturday:  "শনিবার",
}

var months = [...]string{
	"জানুয়ারী", "ফেব্রুয়ারী", "মার্চ", "এপ্রিল", "মে", "জুন",
	"জুলাই", "আগস্ট", "সেপ্টেম্বর", "অক্টোবর", "নভেম্বর", "ডিসেম্বর",
}

func Weekday(d time.Weekday) string {
	return weekdays[d]
}

func MonthName(m time.Month) string {
	return months[m-1]
}

// MonthTitle renders a month heading such as "জুন ২০২৫".
func MonthTitle(year int, m time.Month) string {
	return MonthName(m) + " " + Digits(fmt.Sprint(year))
}

// BillDate formats t as DD/MM/YYYY, the layout printed on bills.
func BillDate(t time.Time) string {
	return t.Format("02/01/2006")
}
