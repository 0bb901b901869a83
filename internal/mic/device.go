package mic

import "github.com/gordonklaus/portaudio"

// DeviceAvailable returns true if PortAudio can find a default input device.
// portaudio.Initialize() must have been called before using this.
func DeviceAvailable() bool {
	dev, err := portaudio.DefaultInputDevice()
	return err == nil && dev != nil && dev.MaxInputChannels > 0
}

func portaudioDeviceName() string {
	dev, err := portaudio.DefaultInputDevice()
	if err != nil || dev == nil {
		return ""
	}
	return dev.Name
}
