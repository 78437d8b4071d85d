package settings

import (
	"math"
	"time"
)

type number interface {
	int | int8 | int16 | int32 | int64 | uint | uint8 | uint16 | uint32 | uint64
}

type Setting[T number] struct {
	Default T `yaml:"default" json:"default"` // soft limit
	Maximal T `yaml:"maximal" json:"maximal"` // hard limit
}

type (
	// HeadersNumber is responsible for the headers storage
	// Default value is a number of pre-allocated entries
	// Maximal value is the greatest declared header count accepted
	HeadersNumber Setting[uint16]

	// StringsSpace is responsible for the shared buffer accumulating every
	// string field of a packet: protocol, URI, addresses, header names and
	// values, attribute names and values
	// Default value is an initial size of the buffer
	// Maximal value limits the cumulative length of all string fields
	StringsSpace Setting[uint32]

	// ParamsNumber is responsible for the query parameters storage
	// Default value is a number of pre-allocated entries
	// Maximal value stands for nothing, it's unused
	ParamsNumber Setting[uint16]

	// TCPReadBuffer is responsible for the tcp reading buffer
	// Default value is a size of the buffer for reading from the socket, so
	//         we can call this setting "how many bytes are read from the
	//         socket at most"
	// Maximal value stands for nothing, it's unused
	TCPReadBuffer Setting[uint32]
)

type (
	Headers struct {
		Number HeadersNumber `yaml:"number" json:"number"`
	}

	Strings struct {
		Space StringsSpace `yaml:"space" json:"space"`
	}

	Query struct {
		Params ParamsNumber `yaml:"params" json:"params"`
	}

	TCP struct {
		ReadBuffer TCPReadBuffer `yaml:"read-buffer" json:"read-buffer"`
		// ReadTimeout limits how long a read may block. Zero leaves the
		// connection without a deadline, which suits the long-living links
		// AJP proxies maintain between requests.
		ReadTimeout time.Duration `yaml:"read-timeout" json:"read-timeout"`
	}
)

type Settings struct {
	Headers Headers `yaml:"headers" json:"headers"`
	Strings Strings `yaml:"strings" json:"strings"`
	Query   Query   `yaml:"query" json:"query"`
	TCP     TCP     `yaml:"tcp" json:"tcp"`
}

func Default() Settings {
	// Usually, Default field stands for size of pre-allocated something
	// and Maximal stands for maximal size of something

	return Settings{
		Headers: Headers{
			Number: HeadersNumber{
				Default: 16,
				Maximal: 256,
			},
		},
		Strings: Strings{
			Space: StringsSpace{
				Default: 2048,
				Maximal: math.MaxUint16,
			},
		},
		Query: Query{
			Params: ParamsNumber{
				Default: 8,
			},
		},
		TCP: TCP{
			ReadBuffer: TCPReadBuffer{
				Default: 4096,
			},
		},
	}
}

// Fill takes some settings and fills it with default values
// everywhere where it is not filled
func Fill(original Settings) (modified Settings) {
	defaultSettings := Default()

	original.Headers.Number.Default = customOrDefault(
		original.Headers.Number.Default, defaultSettings.Headers.Number.Default,
	)
	original.Headers.Number.Maximal = customOrDefault(
		original.Headers.Number.Maximal, defaultSettings.Headers.Number.Maximal,
	)
	original.Strings.Space.Default = customOrDefault(
		original.Strings.Space.Default, defaultSettings.Strings.Space.Default,
	)
	original.Strings.Space.Maximal = customOrDefault(
		original.Strings.Space.Maximal, defaultSettings.Strings.Space.Maximal,
	)
	original.Query.Params.Default = customOrDefault(
		original.Query.Params.Default, defaultSettings.Query.Params.Default,
	)
	original.Query.Params.Maximal = customOrDefault(
		original.Query.Params.Maximal, defaultSettings.Query.Params.Maximal,
	)
	original.TCP.ReadBuffer.Default = customOrDefault(
		original.TCP.ReadBuffer.Default, defaultSettings.TCP.ReadBuffer.Default,
	)
	original.TCP.ReadBuffer.Maximal = customOrDefault(
		original.TCP.ReadBuffer.Maximal, defaultSettings.TCP.ReadBuffer.Maximal,
	)

	// zero read timeout is a meaningful value on its own, so stays as is

	return original
}

func customOrDefault[T number](custom, defaultVal T) T {
	if custom == 0 {
		return defaultVal
	}

	return custom
}
