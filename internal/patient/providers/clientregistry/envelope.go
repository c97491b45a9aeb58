package clientregistry

import (
	"bytes"
	"encoding/xml"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
)

// HL7v3 identifier roots used by the client registry.
const (
	OidHdid = "2.16.840.1.113883.3.51.1.1.6"
	OidPhn  = "2.16.840.1.113883.3.51.1.1.6.1"
)

// demographicsRequest populates the request template
type demographicsRequest struct {
	MessageID    string
	CreationTime string
	Root         string
	Extension    string
}

var demographicsTemplate = template.Must(template.New("get-demographics").Parse(`<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <soap:Body>
    <HCIM_IN_GetDemographics xmlns="urn:hl7-org:v3" ITSVersion="XML_1.0">
      <id root="2.16.840.1.113883.3.51.1.1.1" extension="{{.MessageID}}"/>
      <creationTime value="{{.CreationTime}}"/>
      <versionCode code="V3PR1"/>
      <interactionId root="2.16.840.1.113883.3.51.1.1.2" extension="HCIM_IN_GetDemographics"/>
      <processingCode code="P"/>
      <processingModeCode code="T"/>
      <acceptAckCode code="NE"/>
      <receiver typeCode="RCV">
        <device classCode="DEV" determinerCode="INSTANCE">
          <id root="2.16.840.1.113883.3.51.1.1.4" extension="192.168.0.1"/>
          <asAgent classCode="AGNT">
            <representedOrganization classCode="ORG" determinerCode="INSTANCE">
              <id root="2.16.840.1.113883.3.51.1.1.3" extension="HCIM"/>
            </representedOrganization>
          </asAgent>
        </device>
      </receiver>
      <sender typeCode="SND">
        <device classCode="DEV" determinerCode="INSTANCE">
          <id root="2.16.840.1.113883.3.51.1.1.5" extension="MOH_CRS"/>
          <asAgent classCode="AGNT">
            <representedOrganization classCode="ORG" determinerCode="INSTANCE">
              <id root="2.16.840.1.113883.3.51.1.1.3" extension="HGWAY"/>
            </representedOrganization>
          </asAgent>
        </device>
      </sender>
      <controlActProcess classCode="ACCM" moodCode="EVN">
        <effectiveTime value="{{.CreationTime}}"/>
        <dataEnterer typeCode="CST">
          <assignedPerson classCode="ENT">
            <id root="2.16.840.1.113883.3.51.1.1.7" extension="HLTHGTWAY"/>
          </assignedPerson>
        </dataEnterer>
        <queryByParameter>
          <queryByParameterPayload>
            <person.id value="">
              <value root="{{.Root}}" extension="{{.Extension}}" assigningAuthorityName="LCTZ_IAS"/>
            </person.id>
          </queryByParameterPayload>
        </queryByParameter>
      </controlActProcess>
    </HCIM_IN_GetDemographics>
  </soap:Body>
</soap:Envelope>`))

func buildRequest(root, extension string, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	err := demographicsTemplate.Execute(&buf, demographicsRequest{
		MessageID:    uuid.NewString(),
		CreationTime: now.Format("20060102150405"),
		Root:         xmlEscape(root),
		Extension:    xmlEscape(extension),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func xmlEscape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

type envelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Response demographicsResponse `xml:"HCIM_IN_GetDemographicsResponse"`
	} `xml:"Body"`
}

type demographicsResponse struct {
	ControlActProcess struct {
		QueryAck struct {
			QueryResponseCode struct {
				Code string `xml:"code,attr"`
			} `xml:"queryResponseCode"`
		} `xml:"queryAck"`
		Subject []struct {
			Target identifiedPerson `xml:"target"`
		} `xml:"subject"`
	} `xml:"controlActProcess"`
}

type instanceID struct {
	Root      string `xml:"root,attr"`
	Extension string `xml:"extension,attr"`
}

type identifiedPerson struct {
	ID     []instanceID `xml:"id"`
	Person *person      `xml:"identifiedPerson"`
}

type person struct {
	ID          []instanceID `xml:"id"`
	Name        []personName `xml:"name"`
	DeceasedInd *struct {
		Value bool `xml:"value,attr"`
	} `xml:"deceasedInd"`
	BirthTime struct {
		Value string `xml:"value,attr"`
	} `xml:"birthTime"`
	AdministrativeGenderCode struct {
		Code string `xml:"code,attr"`
	} `xml:"administrativeGenderCode"`
	Addr []address `xml:"addr"`
}

type namePart struct {
	Qualifier string `xml:"qualifier,attr"`
	Text      string `xml:",chardata"`
}

type personName struct {
	Use    string     `xml:"use,attr"`
	Given  []namePart `xml:"given"`
	Family []namePart `xml:"family"`
}

type address struct {
	Use               string   `xml:"use,attr"`
	StreetAddressLine []string `xml:"streetAddressLine"`
	City              string   `xml:"city"`
	State             string   `xml:"state"`
	PostalCode        string   `xml:"postalCode"`
	Country           string   `xml:"country"`
}

func (r *demographicsResponse) responseCode() string {
	return r.ControlActProcess.QueryAck.QueryResponseCode.Code
}

func (r *demographicsResponse) target() *identifiedPerson {
	if len(r.ControlActProcess.Subject) == 0 {
		return nil
	}
	return &r.ControlActProcess.Subject[0].Target
}
