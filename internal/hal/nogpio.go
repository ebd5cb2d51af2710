//go:build !linux || disablegpio

package hal

func openPeriph() (Host, error) { return nil, ErrUnsupported }

func openRPIO() (Host, error) { return nil, ErrUnsupported }
