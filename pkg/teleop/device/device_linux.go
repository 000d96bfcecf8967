//go:build linux

package device

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	iocGAXES    = 0x80016a11
	iocGBUTTONS = 0x80016a12
	iocGNAME    = 0x80ff6a13

	evBTN  uint8 = 0x01
	evAXIS uint8 = 0x02
	evINIT uint8 = 0x80

	maxDevices = 32
)

type device struct {
	file        *os.File
	index       int
	name        string
	axisCount   uint8
	buttonCount uint8
}

// Open opens /dev/input/js<index>.
func Open(index int) (Device, error) {
	f, err := os.Open(fmt.Sprintf("/dev/input/js%d", index))
	if err != nil {
		return nil, err
	}
	d := &device{file: f, index: index}
	var name [256]byte
	for _, req := range []struct {
		code uintptr
		ptr  unsafe.Pointer
	}{
		{iocGAXES, unsafe.Pointer(&d.axisCount)},
		{iocGBUTTONS, unsafe.Pointer(&d.buttonCount)},
		{iocGNAME, unsafe.Pointer(&name)},
	} {
		if _, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), req.code, uintptr(req.ptr)); errno != 0 {
			f.Close()
			return nil, fmt.Errorf("ioctl %x: %w", req.code, errno)
		}
	}
	if pos := bytes.IndexByte(name[:], 0); pos >= 0 {
		d.name = string(name[:pos])
	} else {
		d.name = string(name[:])
	}
	return d, nil
}

// DetectAndOpen opens the first available device from startIndex.
// It returns nil without error if there's none.
func DetectAndOpen(startIndex int) (Device, error) {
	for index := startIndex; index < maxDevices; index++ {
		d, err := Open(index)
		if os.IsNotExist(err) {
			continue
		}
		return d, err
	}
	return nil, nil
}

func (d *device) Close() error     { return d.file.Close() }
func (d *device) Index() int       { return d.index }
func (d *device) Name() string     { return d.name }
func (d *device) AxisCount() int   { return int(d.axisCount) }
func (d *device) ButtonCount() int { return int(d.buttonCount) }

// ReadEvent implements Device. The kernel reports a js_event of 8 bytes.
func (d *device) ReadEvent() (Event, error) {
	var buf [8]byte
	if _, err := d.file.Read(buf[:]); err != nil {
		return nil, err
	}
	ev := rawEvent{
		Value:  int16(binary.LittleEndian.Uint16(buf[4:6])),
		Type:   buf[6],
		Number: buf[7],
	}
	switch ev.Type &^ evINIT {
	case evBTN:
		return &buttonEvent{ev}, nil
	case evAXIS:
		return &axisEvent{ev}, nil
	}
	return &ev, nil
}

type rawEvent struct {
	Value  int16
	Type   uint8
	Number uint8
}

func (e *rawEvent) IsInit() bool { return e.Type&evINIT != 0 }
func (e *rawEvent) Index() int   { return int(e.Number) }

type axisEvent struct{ rawEvent }

func (e *axisEvent) Value() int { return int(e.rawEvent.Value) }

type buttonEvent struct{ rawEvent }

func (e *buttonEvent) Pressed() bool { return e.rawEvent.Value != 0 }
