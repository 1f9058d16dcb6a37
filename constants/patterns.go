package constants

// PhonePattern matches Thai mobile and landline numbers written with a leading zero.
const PhonePattern = `^0[0-9]{9}$`

// DateLayout is the calendar-day format accepted and returned by the API.
const DateLayout = "2006-01-02"
