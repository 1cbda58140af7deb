package network

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/tonneli-cli/tonneli/key"
)

func TestDefault(t *testing.T) {
	Convey("Default should follow the spoofing setting", t, func() {
		viper.Set(key.NetworkSpoofTLS, false)
		So(Default(), ShouldEqual, Client)

		viper.Set(key.NetworkSpoofTLS, true)
		So(Default(), ShouldEqual, Spoofed())
		So(Spoofed(), ShouldEqual, Spoofed())

		viper.Set(key.NetworkSpoofTLS, false)
	})
}

func TestFingerprintTransport(t *testing.T) {
	Convey("Plain HTTP should go through the HTTP/1.1 transport", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		defer server.Close()

		client := &http.Client{Transport: NewFingerprintTransport()}
		resp, err := client.Get(server.URL)
		So(err, ShouldBeNil)
		defer resp.Body.Close()
		So(resp.StatusCode, ShouldEqual, http.StatusTeapot)
	})
}
