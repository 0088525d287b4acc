// Package device declares the hardware collaborators the policy core drives:
// the real-time clock with its user EEPROM, the power manager, the computer
// power switch and the wake-up latches. Every call is synchronous. An error
// from any of them is unrecoverable for the current boot.
package device

// UserEEPROMSize is the number of user bytes in the RV3028 EEPROM
// (addresses 0x00-0x2A).
const UserEEPROMSize = 43

// Countdown timer clock sources supported by SetTimer.
const (
	TimerFrequency4096Hz  uint16 = 4096
	TimerFrequency64Hz    uint16 = 64
	TimerFrequency1Hz     uint16 = 1
	TimerFrequencyMinutes uint16 = 60000
)

// MaxTimerValue is the largest countdown the 16-bit timer can hold.
const MaxTimerValue = 0xFFFF

// Alarm match modes for EnableAlarmInterrupt.
const (
	AlarmModeAll          uint8 = 0
	AlarmModeHoursMinutes uint8 = 4
	AlarmModeDisabled     uint8 = 7
)

// RTC is the real-time clock.
type RTC interface {
	Unix() (uint32, error)
	SetUnix(ts uint32) error
	Hours() (uint8, error)
	Minutes() (uint8, error)
	// SetTimer arms the countdown timer for value ticks of frequency.
	SetTimer(
		repeat bool,
		frequency, value uint16,
		enableInterrupt, start, enableClockOutput bool,
	) error
	EnableAlarmInterrupt(
		minute, hour, dateOrWeekday uint8,
		weekday bool,
		mode uint8,
		enableClockOutput bool,
	) error
	DisableAlarmInterrupt() error
	// CreateTimeStamp latches the current time into the timestamp register.
	CreateTimeStamp() error
	TimeStampUnix() (uint32, error)
}

// EEPROM is a byte addressable non-volatile store. Calls block until the
// device reports it is no longer busy.
type EEPROM interface {
	ReadUserEEPROM(addr uint8, buf []byte) error
	WriteUserEEPROM(addr uint8, data []byte) error
}

// Power enters low-power sleep with the chosen wake sources armed. On
// hardware Sleep does not return: leaving sleep resets the device.
type Power interface {
	Sleep(enableUserWake, enableScheduleWake bool) error
}

// Switch controls the monitored computer.
type Switch interface {
	Off() error
}

// Latches exposes the two "pin changed while powered off" flags.
type Latches interface {
	ReadLatches() (userInput, schedule bool, err error)
	ClearLatches() error
}
