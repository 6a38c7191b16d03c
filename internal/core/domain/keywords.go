package domain

// DefaultRequiredKeywords are the embedded-systems terms that raise relevance.
func DefaultRequiredKeywords() []string {
	return []string{
		"MSP430", "TM4C123", "MSP432", "STM32", "STM32F7", "STM8",
		"ESP8266", "Raspberry", "Beaglebone", "Assembly", "RTOS",
		"Automotive", "OS", "WindowCE", "Compiler", "Bootloader",
		"embedded", "embedded gui", "firmware", "driver", "microcontroller",
		"real-time", "baremetal", "bare-metal", "HAL", "BSP",
	}
}

// DefaultExcludeKeywords disqualify course and tutorial material.
func DefaultExcludeKeywords() []string {
	return []string{
		"course", "tutorial", "learn", "training", "workshop",
		"lesson", "lecture", "class", "video course", "udemy",
		"coursera", "edx", "education", "bootcamp",
	}
}

// DefaultQueries are the broad search terms run against the platform.
func DefaultQueries() []string {
	return []string{
		"embedded systems",
		"firmware",
		"microcontroller",
		"STM32",
		"MSP430",
		"RTOS",
	}
}

// DefaultLanguages are searched for every query.
func DefaultLanguages() []string {
	return []string{"c", "c++"}
}

// DefaultExtraLanguages adds per-query languages searched after the defaults.
func DefaultExtraLanguages() map[string][]string {
	return map[string][]string{
		"embedded systems": {"assembly"},
		"firmware":         {"assembly"},
	}
}

// DefaultPrivilegedLanguages are the systems languages honoured by the override policy.
func DefaultPrivilegedLanguages() []string {
	return []string{"c", "c++", "assembly"}
}
