package contracts

// PlayerOptions defines the configuration options for the player.
type PlayerOptions struct {
	Logger   Logger   // Logger for logging events and errors.
	LogLevel LogLevel // Level of logging to use.
	Sink     Sink     // Output sink receiving played notes; defaults to the OS sink.
	Tuning   bool     // Tuning enables the transposition search before playback.
	Speed    float64  // Speed is the initial playback speed multiplier.
}

// Option is a function that modifies PlayerOptions.
type Option func(*PlayerOptions)

// WithLogger sets the logger for the player.
func WithLogger(l Logger) Option {
	return func(opts *PlayerOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the player.
func WithLogLevel(level LogLevel) Option {
	return func(opts *PlayerOptions) {
		opts.LogLevel = level
	}
}

// WithSink sets the output sink, replacing the OS-specific default.
func WithSink(s Sink) Option {
	return func(opts *PlayerOptions) {
		opts.Sink = s
	}
}

// WithTuning enables or disables the automatic transposition search.
func WithTuning(enabled bool) Option {
	return func(opts *PlayerOptions) {
		opts.Tuning = enabled
	}
}

// WithSpeed sets the initial speed multiplier. Values <= 0 fall back to 1.0.
func WithSpeed(speed float64) Option {
	return func(opts *PlayerOptions) {
		opts.Speed = speed
	}
}
