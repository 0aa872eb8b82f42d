package scoring

// DefaultProtocols returns the built-in protocol catalog in display order.
func DefaultProtocols() []Protocol {
	return []Protocol{
		&GlasgowProtocol{},
		&CURB65Protocol{},
		&QSOFAProtocol{},
		&SOFA2Protocol{},
		&PhoenixProtocol{},
		&MELDProtocol{},
		&MELDNaProtocol{},
		&ChildPughProtocol{},
		&KDIGOProtocol{},
		&GRACEProtocol{},
		&HEARTProtocol{},
		&CHA2DS2VAScProtocol{},
		&HASBLEDProtocol{},
		&WellsDVTProtocol{},
		&WellsPEProtocol{},
	}
}
