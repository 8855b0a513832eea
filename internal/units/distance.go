package units

import "fmt"

// Distance is a length in meters.
type Distance float64

// Meters and Kilometers build a Distance from a value in that unit.
func Meters(m float64) Distance      { return Distance(m) }
func Kilometers(km float64) Distance { return Distance(km * 1000) }

func (d Distance) Plus(other Distance) Distance { return d + other }
func (d Distance) ToM() float64                 { return float64(d) }
func (d Distance) ToKM() float64                { return float64(d) / 1000 }

func (d Distance) String() string {
	return fmt.Sprintf("%gm", float64(d))
}

// HeartRate is a heart rate in beats per minute.
type HeartRate float64

// BPM returns the heart rate in beats per minute.
func (h HeartRate) BPM() float64 { return float64(h) }

func (h HeartRate) String() string {
	return fmt.Sprintf("%gbpm", float64(h))
}
