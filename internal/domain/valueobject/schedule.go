package valueobject

import (
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

const maxScheduleLength = 64

// Schedule — непрозрачная метка желаемого времени занятий (например, "weekend-morning").
// Пустое значение означает, что пожелание не указано.
type Schedule string

// Метки, которые предлагает клиент. Другие значения тоже допустимы.
const (
	ScheduleWeekdayMorning   Schedule = "weekday-morning"
	ScheduleWeekdayAfternoon Schedule = "weekday-afternoon"
	ScheduleWeekdayEvening   Schedule = "weekday-evening"
	ScheduleWeekendMorning   Schedule = "weekend-morning"
	ScheduleWeekendAfternoon Schedule = "weekend-afternoon"
	ScheduleWeekendEvening   Schedule = "weekend-evening"
)

func NewSchedule(tag string) (Schedule, error) {
	tag = strings.TrimSpace(tag)
	if utf8.RuneCountInString(tag) > maxScheduleLength {
		return "", apperror.New(apperror.ErrCodeValidation, "слишком длинная метка расписания")
	}
	return Schedule(tag), nil
}

func (s Schedule) IsSet() bool {
	return s != ""
}
