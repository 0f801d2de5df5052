package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		input string
		want  TimeOfDay
		ok    bool
	}{
		{"06:15", TimeOfDay{6, 15}, true},
		{"12:45", TimeOfDay{12, 45}, true},
		{"00:00", TimeOfDay{0, 0}, true},
		{"23:59", TimeOfDay{23, 59}, true},
		{"24:00", TimeOfDay{}, false},
		{"6:15pm", TimeOfDay{}, false},
		{"0615", TimeOfDay{}, false},
		{"", TimeOfDay{}, false},
	}
	for _, c := range cases {
		got, err := ParseTimeOfDay(c.input)
		if c.ok {
			require.NoError(t, err, "input %q", c.input)
			assert.Equal(t, c.want, got)
		} else {
			assert.Error(t, err, "input %q", c.input)
		}
	}
}

func TestTimeOfDayOn(t *testing.T) {
	ref := time.Date(2024, 3, 7, 18, 30, 45, 0, time.UTC)
	got := TimeOfDay{Hour: 6, Minute: 15}.On(ref)
	assert.Equal(t, time.Date(2024, 3, 7, 6, 15, 0, 0, time.UTC), got)
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "06:05", TimeOfDay{Hour: 6, Minute: 5}.String())
	assert.Equal(t, "12:50", TimeOfDay{Hour: 12, Minute: 50}.String())
}

func TestLoadReportConfigDefaults(t *testing.T) {
	cfg, err := loadReportConfig()
	require.NoError(t, err)

	assert.Equal(t, TimeOfDay{6, 15}, cfg.MorningCutoff)
	assert.Equal(t, TimeOfDay{12, 45}, cfg.AfternoonCutoff)
	assert.Equal(t, TimeOfDay{6, 20}, cfg.MorningTrigger)
	assert.Equal(t, TimeOfDay{12, 50}, cfg.AfternoonTrigger)
	assert.Equal(t, 30*time.Second, cfg.NotifyTimeout)
}

func TestLoadReportConfigFromEnv(t *testing.T) {
	t.Setenv("REPORT_MORNING_CUTOFF", "07:00")
	t.Setenv("REPORT_AFTERNOON_TRIGGER", "17:05")
	t.Setenv("REPORT_RECIPIENTS", "ops@example.com, hr@example.com,")
	t.Setenv("REPORT_NOTIFY_TIMEOUT", "5s")

	cfg, err := loadReportConfig()
	require.NoError(t, err)

	assert.Equal(t, TimeOfDay{7, 0}, cfg.MorningCutoff)
	assert.Equal(t, TimeOfDay{17, 5}, cfg.AfternoonTrigger)
	assert.Equal(t, []string{"ops@example.com", "hr@example.com"}, cfg.Recipients)
	assert.Equal(t, 5*time.Second, cfg.NotifyTimeout)
}

func TestLoadReportConfigInvalidCutoff(t *testing.T) {
	t.Setenv("REPORT_MORNING_CUTOFF", "late-ish")

	_, err := loadReportConfig()
	assert.Error(t, err)
}

func TestTimeOfDayBefore(t *testing.T) {
	assert.True(t, TimeOfDay{6, 15}.Before(TimeOfDay{12, 45}))
	assert.True(t, TimeOfDay{6, 15}.Before(TimeOfDay{6, 20}))
	assert.False(t, TimeOfDay{12, 45}.Before(TimeOfDay{6, 15}))
	assert.False(t, TimeOfDay{6, 15}.Before(TimeOfDay{6, 15}))
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: "postgres", Password: "secret"},
			Report: ReportConfig{
				MorningCutoff:    TimeOfDay{6, 15},
				AfternoonCutoff:  TimeOfDay{12, 45},
				MorningTrigger:   TimeOfDay{6, 20},
				AfternoonTrigger: TimeOfDay{12, 50},
				NotifyTimeout:    time.Second,
			},
		}
	}

	cfg := base()
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Database.Password = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Database.Driver = "memory"
	cfg.Database.Password = ""
	assert.NoError(t, cfg.Validate(), "memory driver needs no credentials")

	cfg = base()
	cfg.Database.Driver = "sqlite"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.SMTP.Host = "smtp.example.com"
	assert.Error(t, cfg.Validate(), "SMTP_FROM required when host set")

	cfg = base()
	cfg.Report.NotifyTimeout = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Report.MorningCutoff, cfg.Report.AfternoonCutoff = cfg.Report.AfternoonCutoff, cfg.Report.MorningCutoff
	assert.Error(t, cfg.Validate(), "cutoffs out of order")

	cfg = base()
	cfg.Report.MorningTrigger = TimeOfDay{6, 0}
	assert.Error(t, cfg.Validate(), "morning trigger before its cutoff")

	cfg = base()
	cfg.Report.AfternoonTrigger = TimeOfDay{12, 30}
	assert.Error(t, cfg.Validate(), "afternoon trigger before its cutoff")
}
