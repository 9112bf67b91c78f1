package lecture

var dayLabels = []string{"월", "화", "수", "목", "금", "토"}

var timeSlots = []TimeSlot{
	{ID: 1, Label: "09:00~09:30"},
	{ID: 2, Label: "09:30~10:00"},
	{ID: 3, Label: "10:00~10:30"},
	{ID: 4, Label: "10:30~11:00"},
	{ID: 5, Label: "11:00~11:30"},
	{ID: 6, Label: "11:30~12:00"},
	{ID: 7, Label: "12:00~12:30"},
	{ID: 8, Label: "12:30~13:00"},
	{ID: 9, Label: "13:00~13:30"},
	{ID: 10, Label: "13:30~14:00"},
	{ID: 11, Label: "14:00~14:30"},
	{ID: 12, Label: "14:30~15:00"},
	{ID: 13, Label: "15:00~15:30"},
	{ID: 14, Label: "15:30~16:00"},
	{ID: 15, Label: "16:00~16:30"},
	{ID: 16, Label: "16:30~17:00"},
	{ID: 17, Label: "17:00~17:30"},
	{ID: 18, Label: "17:30~18:00"},
	{ID: 19, Label: "18:00~18:50"},
	{ID: 20, Label: "18:55~19:45"},
	{ID: 21, Label: "19:50~20:40"},
	{ID: 22, Label: "20:45~21:35"},
	{ID: 23, Label: "21:40~22:30"},
	{ID: 24, Label: "22:35~23:25"},
}

// Days returns the ordered day labels of the weekly grid.
func Days() []string {
	return append([]string(nil), dayLabels...)
}

// DayIndex returns the column of day in the grid, or -1 if unknown.
func DayIndex(day string) int {
	for i, d := range dayLabels {
		if d == day {
			return i
		}
	}
	return -1
}

// DayAt returns the label of column i.
func DayAt(i int) (string, bool) {
	if i < 0 || i >= len(dayLabels) {
		return "", false
	}
	return dayLabels[i], true
}

// Slots returns the time slot table, 1-based by ID.
func Slots() []TimeSlot {
	return append([]TimeSlot(nil), timeSlots...)
}

// SlotCount is the number of rows in the weekly grid.
func SlotCount() int {
	return len(timeSlots)
}

// SlotLabel returns the "HH:MM~HH:MM" label of slot id.
func SlotLabel(id int) (string, bool) {
	if id < 1 || id > len(timeSlots) {
		return "", false
	}
	return timeSlots[id-1].Label, true
}
